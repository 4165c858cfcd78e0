// Command tss is a CLI front end for the github.com/gocrypto/tss library.
// It talks to the core only through tss.Split and tss.Combine; all wire
// formats, padding, and digest handling live in the library, not here.
package main

import "github.com/charmbracelet/log"

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
