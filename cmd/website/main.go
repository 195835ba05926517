// Command website runs the personal site: a blog with a best-effort view
// counter, About and Uses pages, sitemap and RSS. All branding comes from
// environment variables.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/eringen/website"
	"github.com/eringen/website/views"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "serve":
			// fall through to serve below
		case "images":
			src := website.EnvOr("IMAGE_SOURCE_DIR", "content/images")
			dst := website.EnvOr("IMAGE_OUTPUT_DIR", "public/images")
			if err := website.ResizeImages(src, dst); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			return
		case "version":
			fmt.Printf("website %s\n", version)
			return
		case "help", "-h", "--help":
			printUsage()
			return
		default:
			fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
			printUsage()
			os.Exit(1)
		}
	}

	cfg := website.SiteConfig{
		Name:         website.EnvOr("SITE_NAME", "Website"),
		URL:          website.EnvOr("SITE_URL", "http://localhost:3000"),
		Description:  os.Getenv("SITE_DESCRIPTION"),
		Author:       os.Getenv("SITE_AUTHOR"),
		Addr:         website.EnvOr("LISTEN_ADDR", ":3000"),
		DatabasePath: website.EnvOr("DATABASE_PATH", "data/views.db"),
		ContentDir:   website.EnvOr("CONTENT_DIR", "content"),
	}

	app := website.New(cfg, views.New(cfg).Funcs(),
		website.WithStaticDir(website.EnvOr("STATIC_DIR", "public")),
	)
	defer app.Close()

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}

func printUsage() {
	fmt.Println(`website - a personal site with a Markdown blog and view counter

Usage:
  website [command]

Commands:
  serve         Run the HTTP server (default)
  images        Resize content images into the public asset dir
  version       Print the version
  help          Show this help message`)
}
