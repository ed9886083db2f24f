// Printing build information with plain flags.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/lgc202/groqkit/version"
)

var (
	showVersion = flag.Bool("version", false, "print version information")
	showJSON    = flag.Bool("json", false, "print version information as JSON")
)

func main() {
	flag.Parse()

	if *showVersion {
		info := version.Get()
		if *showJSON {
			jsonStr, err := info.ToJSONIndent()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			fmt.Println(jsonStr)
		} else {
			fmt.Println(info.Text())
		}
		os.Exit(0)
	}

	fmt.Printf("groqkit %s\n", version.Get().String())
}
