package services

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"ak_dashboard/config"

	"github.com/xuri/excelize/v2"
)

func TestExportFileNames(t *testing.T) {
	pdf := exportFileName("ИС-21", "pdf")
	docx := exportFileName("ИС-21", "docx")
	xlsx := exportFileName("ИС-21", "xlsx")

	base := strings.TrimSuffix(pdf, ".pdf")
	if strings.TrimSuffix(docx, ".docx") != base || strings.TrimSuffix(xlsx, ".xlsx") != base {
		t.Errorf("имена расходятся: %q %q %q", pdf, docx, xlsx)
	}
	if !strings.HasPrefix(pdf, "A-K_Project_Характеристика_группы_ИС-21_") {
		t.Errorf("имя файла: %q", pdf)
	}
}

func TestExportFileNameEmptyGroup(t *testing.T) {
	name := exportFileName("  ", "pdf")
	if !strings.HasPrefix(name, "A-K_Project_Характеристика_группы_группа_") {
		t.Errorf("имя файла без группы: %q", name)
	}
}

func TestExportFileNameSpaces(t *testing.T) {
	name := exportFileName("группа 21", "pdf")
	if strings.Contains(name, " ") {
		t.Errorf("пробелы должны заменяться подчёркиваниями: %q", name)
	}
}

func TestExportUnknownFormat(t *testing.T) {
	if _, err := ExportDocument(samplePayload(nil), "odt"); err == nil {
		t.Error("неизвестный формат должен отклоняться")
	}
}

func TestExportExcel(t *testing.T) {
	avg := 87.5
	file, err := ExportDocument(samplePayload(&avg), FormatExcel)
	if err != nil {
		t.Fatal(err)
	}
	if file.MIME != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("MIME = %q", file.MIME)
	}
	if !strings.HasSuffix(file.Name, ".xlsx") {
		t.Errorf("имя = %q", file.Name)
	}

	book, err := excelize.OpenReader(bytes.NewReader(file.Data))
	if err != nil {
		t.Fatal(err)
	}
	defer book.Close()

	rows, err := book.GetRows("Характеристика группы")
	if err != nil {
		t.Fatal(err)
	}

	flat := ""
	for _, row := range rows {
		flat += strings.Join(row, "|") + "\n"
	}
	for _, want := range []string{
		"A-K Project - ХАРАКТЕРИСТИКА ГРУППЫ",
		"ИС-21",
		"Математика",
		"87.5",
		"Дружная группа",
		"ФИО студента",
		"Иванов Иван",
		"Хорошо учится, Ответственный",
		"Петров Пётр",
	} {
		if !strings.Contains(flat, want) {
			t.Errorf("в книге нет %q", want)
		}
	}
}

func TestExportExcelNoAverage(t *testing.T) {
	file, err := ExportDocument(samplePayload(nil), FormatExcel)
	if err != nil {
		t.Fatal(err)
	}
	book, err := excelize.OpenReader(bytes.NewReader(file.Data))
	if err != nil {
		t.Fatal(err)
	}
	defer book.Close()

	rows, _ := book.GetRows("Характеристика группы")
	for _, row := range rows {
		for _, cell := range row {
			if strings.Contains(cell, "Средний балл") {
				t.Error("без среднего балла строки быть не должно")
			}
		}
	}
}

func TestExportWord(t *testing.T) {
	avg := 87.5
	file, err := ExportDocument(samplePayload(&avg), FormatWord)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(file.Name, ".docx") {
		t.Errorf("имя = %q", file.Name)
	}

	reader, err := zip.NewReader(bytes.NewReader(file.Data), int64(len(file.Data)))
	if err != nil {
		t.Fatal(err)
	}

	var document string
	for _, zf := range reader.File {
		if zf.Name != "word/document.xml" {
			continue
		}
		rc, err := zf.Open()
		if err != nil {
			t.Fatal(err)
		}
		raw, _ := io.ReadAll(rc)
		rc.Close()
		document = string(raw)
	}
	if document == "" {
		t.Fatal("в пакете нет word/document.xml")
	}

	for _, want := range []string{
		"A-K Project - ХАРАКТЕРИСТИКА ГРУППЫ",
		"Группа: ИС-21",
		"Средний балл группы: 87.5",
		"1. Иванов Иван",
		"Характеристики: Хорошо учится, Ответственный",
		"2. Петров Пётр",
	} {
		if !strings.Contains(document, want) {
			t.Errorf("в документе нет %q", want)
		}
	}
}

func TestExportWordEscapesMarkup(t *testing.T) {
	payload := samplePayload(nil)
	payload.GroupComment = `группа <сильная> & "дружная"`

	file, err := ExportDocument(payload, FormatWord)
	if err != nil {
		t.Fatal(err)
	}
	reader, err := zip.NewReader(bytes.NewReader(file.Data), int64(len(file.Data)))
	if err != nil {
		t.Fatal(err)
	}
	for _, zf := range reader.File {
		if zf.Name != "word/document.xml" {
			continue
		}
		rc, _ := zf.Open()
		raw, _ := io.ReadAll(rc)
		rc.Close()
		if strings.Contains(string(raw), "<сильная>") {
			t.Error("разметка в тексте должна экранироваться")
		}
		if !strings.Contains(string(raw), "&lt;сильная&gt;") {
			t.Error("экранированный текст не найден")
		}
	}
}

func TestExportPDF(t *testing.T) {
	if _, err := os.Stat(config.PDFFontPath); err != nil {
		t.Skipf("шрифт %s не найден", config.PDFFontPath)
	}

	avg := 87.5
	file, err := ExportDocument(samplePayload(&avg), FormatPDF)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(file.Data, []byte("%PDF")) {
		t.Error("результат не похож на PDF")
	}
}

func TestExportPDFMissingFont(t *testing.T) {
	orig := config.PDFFontPath
	config.PDFFontPath = "/нет/такого/шрифта.ttf"
	defer func() { config.PDFFontPath = orig }()

	if _, err := ExportDocument(samplePayload(nil), FormatPDF); err == nil {
		t.Error("без шрифта экспорт в PDF должен падать с ошибкой")
	}
}

func TestDocumentLinesOrder(t *testing.T) {
	avg := 60.0
	lines := documentLines(samplePayload(&avg))

	var texts []string
	for _, l := range lines {
		texts = append(texts, l.Text)
	}
	joined := strings.Join(texts, "\n")

	group := strings.Index(joined, "ОБЩАЯ ХАРАКТЕРИСТИКА ГРУППЫ")
	students := strings.Index(joined, "ХАРАКТЕРИСТИКИ СТУДЕНТОВ")
	footer := strings.Index(joined, "Документ сгенерирован системой")
	if !(group < students && students < footer) {
		t.Error("порядок секций нарушен")
	}
}
