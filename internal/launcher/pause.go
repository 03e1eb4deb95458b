package launcher

import (
	"bufio"
	"fmt"
	"io"
)

// pausePrompt is printed before blocking on input. It goes to stderr in
// practice (see cli/run.go) so that stdout remains exactly the child's
// output.
const pausePrompt = "\nPress Enter to close..."

// Pause prints a prompt to out and blocks until a line is read from in.
//
// This is the launcher's only error-handling mechanism: whatever the
// application printed stays on screen until a human acknowledges it.
// EOF and read errors end the pause immediately, so a launcher with a
// closed or redirected stdin cannot hang forever.
func Pause(in io.Reader, out io.Writer) {
	fmt.Fprint(out, pausePrompt)

	// bufio.Scanner handles both LF and CRLF line endings.
	scanner := bufio.NewScanner(in)
	scanner.Scan()
}
