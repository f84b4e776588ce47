package ui

import "image/color"

var errorColor = color.NRGBA{R: 0xC0, G: 0x3A, B: 0x2B, A: 0xFF}
