package shell

import "io"

func usage(w io.Writer) {
	io.WriteString(w, "commands:\n")
	io.WriteString(w, "load <structure> <words> - load a grid file and a word list\n")
	io.WriteString(w, "solve - fill the loaded grid; prints the result or \"No solution.\"\n")
	io.WriteString(w, "show - print the grid again (empty cells if unsolved)\n")
	io.WriteString(w, "save <output.png> - write the solved grid as an image\n")
	io.WriteString(w, "threads <n> - set the number of search threads\n")
	io.WriteString(w, "exit - leave the shell\n")
}
