// Command portfolio renders a portfolio from a YAML profile without running the server.
//
//	portfolio render --input profile.yaml --theme green --variant document --out jane.html
//	portfolio themes
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
