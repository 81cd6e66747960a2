package cli

import (
	"bufio"
	"context"
	"os"
)

// Root enters the REPL on stdin, showing the current identity in the prompt.
func (a *App) Root(ctx context.Context) {
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
}
