package cmd

import "log"

// closers releases connections in the reverse order they were opened
type closers []closer

type closer struct {
	name  string
	close func() error
}

func (c *closers) add(name string, fn func() error) {
	*c = append(*c, closer{name: name, close: fn})
}

// closeAll runs every closer, newest first, logging failures
func (c *closers) closeAll() {
	for i := len(*c) - 1; i >= 0; i-- {
		entry := (*c)[i]
		log.Printf("Closing %s...", entry.name)
		if err := entry.close(); err != nil {
			log.Printf("Error closing %s: %v", entry.name, err)
		}
	}
	*c = nil
}
