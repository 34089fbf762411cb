package hpix

import (
	"fmt"
	"math"
)

// In NESTED ordering the pixel index within a base face is the Morton
// (z-order) interleave of the face-local x and y coordinates.

var (
	masks = [...]uint{
		0b0101010101010101010101010101010101010101010101010101010101010101,
		0b0011001100110011001100110011001100110011001100110011001100110011,
		0b0000111100001111000011110000111100001111000011110000111100001111,
		0b0000000011111111000000001111111100000000111111110000000011111111,
		0b0000000000000000111111111111111100000000000000001111111111111111,
		0b0000000000000000000000000000000011111111111111111111111111111111,
	}
	powersOfTwo = [...]uint{0, 1, 2, 4, 8, 16}
)

func toZ(x, y uint) (z uint, ok bool) {
	ok = x <= math.MaxUint32 && y <= math.MaxUint32
	for i := 4; i >= 0; i-- {
		x = (x | (x << powersOfTwo[i+1])) & masks[i]
		y = (y | (y << powersOfTwo[i+1])) & masks[i]
	}
	z = x | (y << 1)
	return z, ok
}

func mustToZ(x, y uint) uint {
	z, ok := toZ(x, y)
	if !ok {
		panic(fmt.Errorf(`cannot make z out of %v and %v`, x, y))
	}
	return z
}

func fromZ(z uint) (x, y uint) {
	x = z
	y = z >> 1
	for i := 0; i <= 5; i++ {
		x = (x | (x >> powersOfTwo[i])) & masks[i]
		y = (y | (y >> powersOfTwo[i])) & masks[i]
	}
	return x, y
}

// NestedIndexGrid returns the NESTED pixel indices of the children that a
// pixel splits into shiftOrder levels deeper, as a 2^shiftOrder by
// 2^shiftOrder grid. grid[y][x] walks the pixel's face-local coordinates, so
// the grid maps one-to-one onto the samples of a rasterized tile.
// ipix is interpreted in NESTED ordering.
func NestedIndexGrid(ipix int, shiftOrder uint) [][]int {
	width := 1 << shiftOrder
	base := ipix << (2 * shiftOrder)
	grid := make([][]int, width)
	for y := 0; y < width; y++ {
		grid[y] = make([]int, width)
		for x := 0; x < width; x++ {
			grid[y][x] = base + int(mustToZ(uint(x), uint(y)))
		}
	}
	return grid
}
