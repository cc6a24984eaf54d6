// Package render рисует расписание на неделю картинкой для владельца.
package render

import (
	"bytes"
	"fmt"
	"image/color"
	"time"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/mvolkova/studio-bot/internal/schedule"
)

const (
	cellWidth    = 110.0
	cellHeight   = 36.0
	headerHeight = 48.0
	leftWidth    = 80.0
	padding      = 4.0
	borderRadius = 5.0
)

// Подписи в сетке числовые, поэтому хватает растрового шрифта
// без кириллических глифов.
var (
	bgColor       = color.RGBA{245, 246, 248, 255}
	textColor     = color.RGBA{80, 85, 90, 255}
	todayColor    = color.NRGBA{255, 99, 71, 125}
	slotFreeColor = color.RGBA{133, 193, 85, 220}
	slotBusyColor = color.RGBA{220, 220, 220, 255}
	gridLineColor = color.NRGBA{150, 150, 150, 255}
)

// WeekPNG рисует сетку доступности: колонка на дату, строка на слот
// шаблона рабочего дня. Свободные слоты зелёные, занятые серые.
func WeekPNG(store *schedule.Store, days int) ([]byte, error) {
	times := store.Template().Times()
	if len(times) == 0 {
		return nil, fmt.Errorf("empty workday template")
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	width := int(leftWidth + cellWidth*float64(days))
	height := int(headerHeight + cellHeight*float64(len(times)))

	dc := gg.NewContext(width, height)
	dc.SetColor(bgColor)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)

	for col := 0; col < days; col++ {
		d := today.AddDate(0, 0, col)
		x := leftWidth + cellWidth*float64(col)

		if col == 0 {
			dc.SetColor(todayColor)
			dc.DrawRectangle(x, 0, cellWidth, headerHeight)
			dc.Fill()
		}

		dc.SetColor(textColor)
		dc.DrawStringAnchored(d.Format("02.01"), x+cellWidth/2, headerHeight/2, 0.5, 0.5)
	}

	for row, t := range times {
		y := headerHeight + cellHeight*float64(row)

		dc.SetColor(textColor)
		dc.DrawStringAnchored(t.String(), leftWidth/2, y+cellHeight/2, 0.5, 0.5)

		for col := 0; col < days; col++ {
			d := today.AddDate(0, 0, col)
			x := leftWidth + cellWidth*float64(col)

			if store.IsAvailable(d, t) {
				dc.SetColor(slotFreeColor)
			} else {
				dc.SetColor(slotBusyColor)
			}
			dc.DrawRoundedRectangle(x+padding, y+padding, cellWidth-2*padding, cellHeight-2*padding, borderRadius)
			dc.Fill()
		}
	}

	dc.SetColor(gridLineColor)
	dc.SetLineWidth(1)
	dc.DrawLine(leftWidth, 0, leftWidth, float64(height))
	dc.DrawLine(0, headerHeight, float64(width), headerHeight)
	dc.Stroke()

	buf := &bytes.Buffer{}
	if err := dc.EncodePNG(buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}

	return buf.Bytes(), nil
}
