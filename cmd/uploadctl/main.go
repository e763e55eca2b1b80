// uploadctl pushes local image files into a running gallery server as one
// batch, using the same selection rules the web client applies.
package main

import (
	"context"
	"flag"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"

	"gallery/internal/selection"
)

func main() {
	server := flag.String("server", "http://localhost:3000", "gallery server base URL")
	timeout := flag.Duration("timeout", 2*time.Minute, "upload timeout")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: uploadctl [-server URL] image...")
		os.Exit(2)
	}

	sel := selection.New()
	for _, path := range flag.Args() {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "read %s: %v\n", path, err)
			os.Exit(1)
		}
		rejections := sel.Add(selection.File{
			Name:     filepath.Base(path),
			MimeType: mime.TypeByExtension(filepath.Ext(path)),
			Data:     data,
		})
		for _, r := range rejections {
			fmt.Fprintf(os.Stderr, "skipped %s: %s\n", r.Name, r.Reason)
		}
	}

	if sel.Count() == 0 {
		fmt.Fprintln(os.Stderr, "nothing to upload")
		os.Exit(1)
	}
	fmt.Println(sel.Summary())

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	result, err := sel.Submit(ctx, nil, *server)
	if err != nil {
		fmt.Fprintf(os.Stderr, "upload failed: %v\n", err)
		os.Exit(1)
	}
	if !result.Success {
		fmt.Fprintf(os.Stderr, "rejected: %s\n", result.Error)
		printStorage(result)
		os.Exit(1)
	}

	fmt.Printf("uploaded %d image(s)\n", result.Count)
	printStorage(result)
}

func printStorage(result *selection.UploadResult) {
	if result.StorageInfo == nil {
		return
	}
	fmt.Printf("storage: %s of %s used (%.2f%%)\n",
		humanize.IBytes(uint64(result.StorageInfo.Used)),
		humanize.IBytes(uint64(result.StorageInfo.Limit)),
		result.StorageInfo.UsedPercentage)
}
