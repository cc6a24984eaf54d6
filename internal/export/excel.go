// Package export собирает выгрузку записей в Excel для владельца.
package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/mvolkova/studio-bot/internal/model"
)

const sheetName = "Записи"

var columns = []string{"№", "Клиент", "Телефон", "Username", "Дата", "Время", "Комментарий", "Статус", "Создана"}

// AppointmentsWorkbook строит xlsx со всеми записями, по строке на заявку.
func AppointmentsWorkbook(appts []*model.Appointment) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", sheetName)

	for i, col := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, col); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
	}

	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err == nil {
		startCell, _ := excelize.CoordinatesToCellName(1, 1)
		endCell, _ := excelize.CoordinatesToCellName(len(columns), 1)
		_ = f.SetCellStyle(sheetName, startCell, endCell, style)
	}

	for rowIdx, appt := range appts {
		date := ""
		if appt.Date != nil {
			date = appt.Date.Format("02.01.2006")
		}

		row := []interface{}{
			appt.ID,
			appt.FirstName + " " + appt.LastName,
			appt.PhoneNumber,
			appt.Username,
			date,
			appt.TimeOfDay,
			appt.Comments,
			string(appt.Status),
			appt.RequestedAt.Format("02.01.2006 15:04"),
		}

		for i, val := range row {
			cell, err := excelize.CoordinatesToCellName(i+1, rowIdx+2)
			if err != nil {
				return nil, fmt.Errorf("row cell: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, val); err != nil {
				return nil, fmt.Errorf("write row: %w", err)
			}
		}
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	return buf, nil
}
