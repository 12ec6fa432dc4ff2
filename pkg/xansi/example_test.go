package xansi_test

import (
	"fmt"

	"github.com/omeyang/logkit/pkg/xansi"
)

func ExampleToDisplay() {
	console := xansi.ToDisplay("&rERROR&x disk full")
	fmt.Printf("%q\n", console)
	// Output: "\x1b[31mERROR\x1b[0m disk full"
}

func ExampleToPlain() {
	file := xansi.ToPlain(xansi.ToDisplay("&rERROR&x disk full"))
	fmt.Println(file)
	// Output: ERROR disk full
}

func ExampleWrap() {
	fmt.Println(xansi.Wrap('y', "WARN"))
	// Output: &yWARN&x
}
