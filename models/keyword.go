package models

// KeywordCategory — категория ключевой характеристики.
type KeywordCategory string

const (
	CategoryAcademic KeywordCategory = "academic"
	CategoryEffort   KeywordCategory = "effort"
	CategorySocial   KeywordCategory = "social"
	CategoryPositive KeywordCategory = "positive"
	CategoryNeutral  KeywordCategory = "neutral"
	CategoryNegative KeywordCategory = "negative"
)

// Keyword — элемент статического справочника характеристик.
type Keyword struct {
	ID       string          `json:"id"`
	Text     string          `json:"text"`
	Category KeywordCategory `json:"category"`
}

// KeywordCatalog — справочник ключевых характеристик. Порядок фиксирован,
// записи не создаются и не удаляются во время работы.
var KeywordCatalog = []Keyword{
	{ID: "1", Text: "Хорошо учится", Category: CategoryAcademic},
	{ID: "2", Text: "Активный на занятиях", Category: CategoryEffort},
	{ID: "3", Text: "Творческий подход", Category: CategoryPositive},
	{ID: "4", Text: "Лидерские качества", Category: CategorySocial},
	{ID: "5", Text: "Требуется внимание", Category: CategoryNegative},
	{ID: "6", Text: "Способный к аналитике", Category: CategoryAcademic},
	{ID: "7", Text: "Ответственный", Category: CategoryPositive},
	{ID: "8", Text: "Организованный", Category: CategoryPositive},
	{ID: "9", Text: "Усидчивый", Category: CategoryEffort},
	{ID: "10", Text: "Помогает одногруппникам", Category: CategorySocial},
	{ID: "11", Text: "Легко работает в команде", Category: CategorySocial},
	{ID: "12", Text: "Стабильная успеваемость", Category: CategoryNeutral},
	{ID: "13", Text: "Посещает все занятия", Category: CategoryNeutral},
	{ID: "14", Text: "Пропускает занятия", Category: CategoryNegative},
	{ID: "15", Text: "Низкая мотивация", Category: CategoryNegative},
	{ID: "16", Text: "Глубокие знания предмета", Category: CategoryAcademic},
	{ID: "17", Text: "Доводит работу до конца", Category: CategoryEffort},
	{ID: "18", Text: "Сдержанный, спокойный", Category: CategoryNeutral},
}

// KeywordByID возвращает ключевую характеристику по id или nil, если её нет.
func KeywordByID(id string) *Keyword {
	for i := range KeywordCatalog {
		if KeywordCatalog[i].ID == id {
			return &KeywordCatalog[i]
		}
	}
	return nil
}

// KeywordsByCategory возвращает характеристики категории в порядке справочника.
// Значение "all" (или пустая строка) возвращает весь справочник.
func KeywordsByCategory(category string) []Keyword {
	if category == "" || category == "all" {
		out := make([]Keyword, len(KeywordCatalog))
		copy(out, KeywordCatalog)
		return out
	}
	var out []Keyword
	for _, kw := range KeywordCatalog {
		if string(kw.Category) == category {
			out = append(out, kw)
		}
	}
	return out
}
