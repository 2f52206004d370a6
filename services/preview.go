package services

import (
	"fmt"
	"strconv"
	"strings"

	"ak_dashboard/models"
)

const previewBanner = "=========================================="

// Литеральные заглушки пустых полей. Экспортёры обязаны использовать
// те же: содержимое документа одинаково во всех форматах.
const (
	placeholderNone        = "Не указано"
	placeholderNoComment   = "не указан"
	placeholderNoKeywords  = "не указаны"
	placeholderNoGroupText = "Не указана"
)

// RenderPreview детерминированно сериализует снимок документа в плоский
// текст. Порядок секций фиксирован; строка среднего балла при его
// отсутствии не печатается вовсе.
func RenderPreview(payload models.DocumentPayload) string {
	var b strings.Builder

	b.WriteString(previewBanner + "\n")
	b.WriteString("        A-K Project - ХАРАКТЕРИСТИКА ГРУППЫ\n")
	b.WriteString(previewBanner + "\n\n")

	b.WriteString("Группа: " + orPlaceholder(payload.GroupName, placeholderNone) + "\n")
	b.WriteString("Дисциплина: " + orPlaceholder(payload.DisciplineName, placeholderNone) + "\n")
	b.WriteString("Дата: " + payload.Date + "\n")
	if payload.AverageScore != nil {
		b.WriteString("Средний балл группы: " + formatScore(*payload.AverageScore) + "\n")
	}
	b.WriteString("\n")

	b.WriteString(previewBanner + "\n")
	b.WriteString("ОБЩАЯ ХАРАКТЕРИСТИКА ГРУППЫ\n")
	b.WriteString(previewBanner + "\n")
	b.WriteString(orPlaceholder(payload.GroupComment, placeholderNoGroupText) + "\n\n")

	b.WriteString(previewBanner + "\n")
	b.WriteString("ХАРАКТЕРИСТИКИ СТУДЕНТОВ\n")
	b.WriteString(previewBanner + "\n\n")

	if len(payload.Students) == 0 {
		b.WriteString("Информация о студентах отсутствует\n")
	}
	for i, st := range payload.Students {
		fmt.Fprintf(&b, "%d. %s\n", i+1, st.FullName)
		fmt.Fprintf(&b, "   - Баллы: %s (основные: %s, пересдача: %s)\n",
			formatScore(st.TotalScore), formatScore(st.MainScore), formatScore(st.RetakeScore))
		b.WriteString("   - Характеристики: " + keywordsLine(st.Keywords) + "\n")
		b.WriteString("   - Индивидуальный комментарий: " + orPlaceholder(st.Comment, placeholderNoComment) + "\n\n")
	}

	b.WriteString(previewBanner + "\n")
	b.WriteString("      A-K Project - Документ сгенерирован системой      \n")
	b.WriteString(previewBanner + "\n")

	return b.String()
}

func orPlaceholder(value, placeholder string) string {
	if strings.TrimSpace(value) == "" {
		return placeholder
	}
	return value
}

func keywordsLine(keywords []string) string {
	if len(keywords) == 0 {
		return placeholderNoKeywords
	}
	return strings.Join(keywords, ", ")
}

// formatScore печатает балл без хвостовых нулей: целые без точки,
// дробные как есть (87.5 остаётся 87.5).
func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
