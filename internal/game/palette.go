package game

// RGB is an 8-bit per channel colour.
type RGB struct {
	R, G, B uint8
}

// Hex unpacks 0xRRGGBB.
func Hex(v uint32) RGB {
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}
}

// Floats returns the colour as normalised GL components.
func (c RGB) Floats() (r, g, b float32) {
	return float32(c.R) / 255.0, float32(c.G) / 255.0, float32(c.B) / 255.0
}

var Palette = struct {
	Sky        RGB
	HUDText    RGB
	HUDShadow  RGB
	HUDAccent  RGB
	PanelBack  RGB
	PanelTitle RGB
	PanelText  RGB
}{
	Sky:        RGB{R: 0, G: 0, B: 0},
	HUDText:    RGB{R: 235, G: 235, B: 240},
	HUDShadow:  RGB{R: 10, G: 10, B: 14},
	HUDAccent:  RGB{R: 255, G: 210, B: 90},
	PanelBack:  RGB{R: 12, G: 16, B: 28},
	PanelTitle: RGB{R: 255, G: 255, B: 255},
	PanelText:  RGB{R: 200, G: 210, B: 225},
}
