package dsarc_test

import (
	"encoding/binary"
	"fmt"

	"github.com/meigma/dsarc"
)

func ExampleLoadBytes() {
	// One entry named hello.txt whose payload starts right after the header.
	data := make([]byte, 16+128)
	copy(data, dsarc.Magic)
	binary.LittleEndian.PutUint32(data[8:], 1)
	copy(data[16:], "hello.txt\x00")
	binary.LittleEndian.PutUint32(data[16+116:], 5)
	binary.LittleEndian.PutUint32(data[16+120:], 144)
	data = append(data, "world"...)

	arc, err := dsarc.LoadBytes(data)
	if err != nil {
		fmt.Println(err)
		return
	}
	for entry, payload := range arc.All() {
		fmt.Printf("%s: %s\n", entry.Filename, payload)
	}
	// Output: hello.txt: world
}
