package services

import (
	"fmt"

	"ak_dashboard/models"

	"github.com/xuri/excelize/v2"
)

// buildXlsx рендерит документ в книгу Excel. Шапка и секции совпадают с
// предпросмотром, но студенты идут настоящей таблицей: потребители
// таблиц ждут строк и колонок, а не повествования.
func buildXlsx(payload models.DocumentPayload) ([]byte, error) {
	const sheet = "Характеристика группы"

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	row := 1
	setRow := func(values ...interface{}) error {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
		row++
		return nil
	}

	if err := setRow("A-K Project - ХАРАКТЕРИСТИКА ГРУППЫ"); err != nil {
		return nil, err
	}
	if err := setRow("Группа:", orPlaceholder(payload.GroupName, placeholderNone)); err != nil {
		return nil, err
	}
	if err := setRow("Дисциплина:", orPlaceholder(payload.DisciplineName, placeholderNone)); err != nil {
		return nil, err
	}
	if err := setRow("Дата:", payload.Date); err != nil {
		return nil, err
	}
	if payload.AverageScore != nil {
		if err := setRow("Средний балл группы:", *payload.AverageScore); err != nil {
			return nil, err
		}
	}
	row++

	if err := setRow("ОБЩАЯ ХАРАКТЕРИСТИКА ГРУППЫ"); err != nil {
		return nil, err
	}
	if err := setRow(orPlaceholder(payload.GroupComment, placeholderNoGroupText)); err != nil {
		return nil, err
	}
	row++

	if err := setRow("ХАРАКТЕРИСТИКИ СТУДЕНТОВ"); err != nil {
		return nil, err
	}
	if err := setRow("№", "ФИО студента", "Основной балл", "Балл за пересдачу", "Общий балл", "Характеристики", "Комментарий"); err != nil {
		return nil, err
	}
	for i, st := range payload.Students {
		if err := setRow(
			i+1,
			st.FullName,
			st.MainScore,
			st.RetakeScore,
			st.TotalScore,
			keywordsLine(st.Keywords),
			orPlaceholder(st.Comment, placeholderNoComment),
		); err != nil {
			return nil, err
		}
	}
	row++

	if err := setRow("A-K Project - Документ сгенерирован системой"); err != nil {
		return nil, err
	}

	// Ширина колонок таблицы, чтобы ФИО и комментарии читались.
	if err := f.SetColWidth(sheet, "B", "B", 32); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheet, "F", "G", 40); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("сборка книги: %w", err)
	}
	return buf.Bytes(), nil
}
