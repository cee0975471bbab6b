package typegen

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/bodnarbalazs/Cs2Ts/errors"
	"github.com/bodnarbalazs/Cs2Ts/logger"
)

// FilesPlaceholder in a hook command expands to the written files
const FilesPlaceholder = "{files}"

// RunHook runs the post-generate command in dir, e.g.
// "npx prettier --write {files}". The command is split with shell quoting
// rules but not run through a shell. An empty command does nothing.
func RunHook(ctx context.Context, command, dir string, files []string) error {
	command = strings.TrimSpace(command)
	if command == "" {
		return nil
	}

	words, err := shellquote.Split(command)
	if err != nil {
		return errors.Wrap(errors.Wrap(errors.ErrInvalidConfig, err.Error()), "hooks.post_generate")
	}

	var args []string
	for _, w := range words {
		if w == FilesPlaceholder {
			args = append(args, files...)
			continue
		}
		args = append(args, w)
	}
	if len(args) == 0 {
		return nil
	}

	var output bytes.Buffer
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Dir = dir
	cmd.Stdout = &output
	cmd.Stderr = &output

	logger.Debugw("Running post-generate hook",
		"command", shellquote.Join(args...),
		logger.FieldCount, len(files))
	if err := cmd.Run(); err != nil {
		err = errors.Wrapf(err, "post-generate hook %q failed", args[0])
		if out := strings.TrimSpace(output.String()); out != "" {
			err = errors.WithDetail(err, out)
		}
		return err
	}
	return nil
}
