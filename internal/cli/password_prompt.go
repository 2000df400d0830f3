package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

func stdinIsTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// promptPasswordNoEcho reads one line from the terminal with echo
// disabled, so the new password does not land in shell scrollback.
func promptPasswordNoEcho(label string) (string, error) {
	fmt.Print(label)
	defer fmt.Println()

	entered, err := readPasswordNoEcho(os.Stdin)
	if err != nil {
		return "", err
	}
	return string(entered), nil
}

// readTrimmedLine consumes one line of input and strips the trailing
// newline, tolerating EOF on the last line. The platform variants call
// this after disabling echo.
func readTrimmedLine(stdin *os.File) ([]byte, error) {
	reader := bufio.NewReader(stdin)
	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return []byte(strings.TrimRight(line, "\r\n")), nil
}
