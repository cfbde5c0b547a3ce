package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/GoSim-25-26J-441/manim-render-service/internal/render/client"
)

func main() {
	server := flag.String("server", client.DefaultServerURL, "render server base URL")
	file := flag.String("file", "", "path to the manim script (required)")
	info := flag.String("info", "", `code fence info string, e.g. "scene=Dot format=png quality=low"`)
	scene := flag.String("scene", "", "scene class to render")
	format := flag.String("format", "", "output format: mp4, gif, png or svg")
	quality := flag.String("quality", "", "render quality: low, medium or high")
	out := flag.String("out", "", "output path (default: the filename returned by the server)")
	flag.Parse()

	if *file == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(*server, *file, *info, client.Options{Scene: *scene, Format: *format, Quality: *quality}, *out); err != nil {
		var rerr *client.Error
		if errors.As(err, &rerr) && rerr.Stderr != "" {
			fmt.Fprintln(os.Stderr, rerr.Stderr)
		}
		log.Fatal(err)
	}
}

func run(server, file, info string, flags client.Options, out string) error {
	code, err := os.ReadFile(file)
	if err != nil {
		return err
	}

	// Explicit flags win over the info string, which wins over defaults.
	opts := flags.
		WithDefaults(client.ParseInfoString(info)).
		WithDefaults(client.Options{Scene: "Scene", Format: "mp4", Quality: "low"})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	art, err := client.New(server).Render(ctx, client.RenderRequest{
		Code:    string(code),
		Scene:   opts.Scene,
		Format:  opts.Format,
		Quality: opts.Quality,
	})
	if err != nil {
		return err
	}

	if out == "" {
		out = art.Filename
	}
	if err := os.WriteFile(out, art.Data, 0644); err != nil {
		return err
	}

	fmt.Printf("wrote %s (%s, %d bytes)\n", out, client.MIMEType(filepath.Ext(art.Filename)), len(art.Data))
	return nil
}
