package app

import (
	"image"
	"log"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// Display wraps the SSD1306 status screen. Show is fire and forget: draw
// errors are logged, never returned, and never block the prediction loop.
type Display struct {
	dev *ssd1306.Dev
}

// NewDisplay initializes the 128x64 SSD1306 at addr on bus.
func NewDisplay(bus i2c.Bus, addr uint16) (*Display, error) {
	dev, err := ssd1306.NewI2C(bus, &ssd1306.DefaultOpts)
	if err != nil {
		return nil, err
	}
	log.Printf("display: initialized at 0x%02X", addr)
	return &Display{dev: dev}, nil
}

// Show renders up to three lines of text, centered vertically.
func (d *Display) Show(text string) {
	if d == nil {
		return
	}

	img := image1bit.NewVerticalLSB(image.Rect(0, 0, 128, 64))

	// Blank image
	for i := 0; i < 1024; i++ {
		img.Pix[i] = 0
	}

	drawer := &font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{image1bit.On},
		Face: basicfont.Face7x13,
	}

	lines := wrapText(text, 18)
	if len(lines) > 3 {
		lines = lines[:3]
	}
	y := 39 - 13*(len(lines)-1)/2
	for _, line := range lines {
		drawer.Dot = fixed.P(0, y)
		drawer.DrawBytes([]byte(line))
		y += 13
	}

	if err := d.dev.Draw(d.dev.Bounds(), img, image.Point{}); err != nil {
		log.Printf("display: draw error: %v", err)
	}
}

// ShowSplash paints the boot screen.
func (d *Display) ShowSplash() {
	d.Show("Activity Tracker")
}

// wrapText splits text into lines of at most width characters, breaking at
// spaces where possible.
func wrapText(text string, width int) []string {
	if len(text) <= width {
		return []string{text}
	}
	var lines []string
	for len(text) > width {
		cut := width
		for i := width; i > 0; i-- {
			if text[i] == ' ' {
				cut = i
				break
			}
		}
		lines = append(lines, text[:cut])
		text = text[cut:]
		if len(text) > 0 && text[0] == ' ' {
			text = text[1:]
		}
	}
	if text != "" {
		lines = append(lines, text)
	}
	return lines
}
