// Command stockroom places inventory items on a fixed storage grid.
package main

import "github.com/mesh-intelligence/stockroom/internal/cli"

func main() {
	cli.Execute()
}
