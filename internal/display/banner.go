package display

import (
	"fmt"
	"os"

	"github.com/Asura19/AssetCatalogTinkerer/internal/logging"
)

// PrintBanner prints the ASCII art banner; uses Cyan if colors are enabled.
func PrintBanner() {
	if logging.Cyan != "" {
		fmt.Fprint(os.Stdout, logging.Cyan)
	}
	fmt.Fprint(os.Stdout, `    _    ____ _____ _       _
   / \  / ___|_   _(_)_ __ | | _____ _ __ ___ _ __
  / _ \| |     | | | | '_ \| |/ / _ \ '__/ _ \ '__|
 / ___ \ |___  | | | | | | |   <  __/ | |  __/ |
/_/   \_\____| |_| |_|_| |_|_|\_\___|_|  \___|_|
`)
	if logging.Cyan != "" {
		fmt.Fprintln(os.Stdout, logging.NC)
	}
}
