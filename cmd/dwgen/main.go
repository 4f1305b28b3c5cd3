package main

import (
	dogwhistle "github.com/dogwhistle/dogwhistle/src"
)

func main() {
	dogwhistle.DwgenMain()
}
