package services

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"ak_dashboard/models"
)

// Форматы экспорта характеристики.
const (
	FormatPDF   = "pdf"
	FormatWord  = "word"
	FormatExcel = "excel"
)

// ExportFile — готовый к отдаче документ.
type ExportFile struct {
	Name string
	MIME string
	Data []byte
}

// ExportDocument собирает документ нужного формата из снимка. Содержимое
// и порядок секций во всех форматах совпадают с предпросмотром, различается
// только контейнер. Генерация целиком в памяти: при ошибке файла нет.
func ExportDocument(payload models.DocumentPayload, format string) (*ExportFile, error) {
	var (
		data []byte
		ext  string
		mime string
		err  error
	)

	switch format {
	case FormatPDF:
		data, err = buildPDF(payload)
		ext, mime = "pdf", "application/pdf"
	case FormatWord:
		data, err = buildDocx(payload)
		ext, mime = "docx", "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case FormatExcel:
		data, err = buildXlsx(payload)
		ext, mime = "xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return nil, fmt.Errorf("неизвестный формат документа: %s", format)
	}
	if err != nil {
		return nil, fmt.Errorf("генерация документа: %w", err)
	}

	return &ExportFile{
		Name: exportFileName(payload.GroupName, ext),
		MIME: mime,
		Data: data,
	}, nil
}

// exportFileName строит имя файла:
// A-K_Project_Характеристика_группы_<группа>_<ДД-ММ-ГГГГ>.<расширение>.
func exportFileName(groupName, ext string) string {
	group := strings.TrimSpace(groupName)
	if group == "" {
		group = "группа"
	}
	group = strings.ReplaceAll(group, " ", "_")
	date := time.Now().Format("02-01-2006")
	return fmt.Sprintf("A-K_Project_Характеристика_группы_%s_%s.%s", group, date, ext)
}

// EncodeFileName кодирует кириллическое имя файла для заголовка
// Content-Disposition (форма filename* из RFC 5987).
func EncodeFileName(name string) string {
	return url.PathEscape(name)
}

// documentLines — построчное содержимое документа в каноническом порядке
// предпросмотра. Общая основа PDF- и Word-экспортёров.
type documentLine struct {
	Text    string
	Heading bool
	Center  bool
}

func documentLines(payload models.DocumentPayload) []documentLine {
	var lines []documentLine

	lines = append(lines, documentLine{Text: "A-K Project - ХАРАКТЕРИСТИКА ГРУППЫ", Heading: true, Center: true})
	lines = append(lines, documentLine{Text: "Группа: " + orPlaceholder(payload.GroupName, placeholderNone)})
	lines = append(lines, documentLine{Text: "Дисциплина: " + orPlaceholder(payload.DisciplineName, placeholderNone)})
	lines = append(lines, documentLine{Text: "Дата: " + payload.Date})
	if payload.AverageScore != nil {
		lines = append(lines, documentLine{Text: "Средний балл группы: " + formatScore(*payload.AverageScore)})
	}

	lines = append(lines, documentLine{Text: "ОБЩАЯ ХАРАКТЕРИСТИКА ГРУППЫ", Heading: true})
	lines = append(lines, documentLine{Text: orPlaceholder(payload.GroupComment, placeholderNoGroupText)})

	lines = append(lines, documentLine{Text: "ХАРАКТЕРИСТИКИ СТУДЕНТОВ", Heading: true})
	if len(payload.Students) == 0 {
		lines = append(lines, documentLine{Text: "Информация о студентах отсутствует"})
	}
	for i, st := range payload.Students {
		lines = append(lines, documentLine{Text: fmt.Sprintf("%d. %s", i+1, st.FullName), Heading: true})
		lines = append(lines, documentLine{Text: fmt.Sprintf("Баллы: %s (основные: %s, пересдача: %s)",
			formatScore(st.TotalScore), formatScore(st.MainScore), formatScore(st.RetakeScore))})
		lines = append(lines, documentLine{Text: "Характеристики: " + keywordsLine(st.Keywords)})
		lines = append(lines, documentLine{Text: "Индивидуальный комментарий: " + orPlaceholder(st.Comment, placeholderNoComment)})
	}

	lines = append(lines, documentLine{Text: "A-K Project - Документ сгенерирован системой", Center: true})
	return lines
}
