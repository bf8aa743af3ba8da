package cli

import (
	"context"
	"fmt"
	"strings"
)

const barWidth = 30

func (a *App) showUpload() {
	a.printf("Upload files: add <path...>\n")
	if p := a.progress.value(); p > 0 {
		a.printf("%s\n", progressBar(p))
	}
}

func (a *App) upload(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		return a.fail("Usage", fmt.Errorf("add <path...>"))
	}

	a.progress.set(0)
	out, err := a.files.Upload(ctx, paths, func(p int) {
		a.progress.set(p)
		a.printf("\r%s", progressBar(p))
	})
	a.printf("\n")
	if err != nil {
		a.progress.reset()
		return a.fail("Upload failed", err)
	}

	stored := 0
	for _, o := range out {
		if o.OK {
			stored++
			continue
		}
		a.log.Warn(ctx, "file not stored", "name", o.Name, "error", o.Error)
	}
	a.progress.finish(a.config.ProgressResetDelay)
	a.printf("Upload complete: %d of %d stored.\n", stored, len(paths))
	return nil
}

func progressBar(percent int) string {
	filled := percent * barWidth / 100
	return fmt.Sprintf("[%s%s] %3d%%", strings.Repeat("#", filled), strings.Repeat(".", barWidth-filled), percent)
}
