package main

import (
	"hot-product-trends/internal/cli"
)

func main() {
	cli.Execute()
}
