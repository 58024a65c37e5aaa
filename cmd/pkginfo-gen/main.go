// Command pkginfo-gen writes PackageInfo accessor methods whose values are
// taken from PKGINFO_* variables at generation time.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/launchbynttdata/go-pkginfo/internal/cli"
)

func main() {
	if err := cli.Execute(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "pkginfo-gen: %v\n", err)
		os.Exit(1)
	}
}
