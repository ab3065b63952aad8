package main

import (
	"pdf_compressor/cmd"
)

func main() {
	cmd.Execute()
}
