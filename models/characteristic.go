package models

import "strings"

// StudentCharacteristic — черновик характеристики одного студента.
// Keywords хранит id в порядке добавления; appended помнит, буллеты каких
// ключевых слов уже дописаны в комментарий, чтобы повторное включение
// не плодило дубликаты (подстрочное сравнение ловит ложные совпадения,
// поэтому считаем по id).
type StudentCharacteristic struct {
	StudentID string   `json:"studentId"`
	FullName  string   `json:"fullName"`
	Keywords  []string `json:"keywords"`
	Comment   string   `json:"comment"`

	appended map[string]bool
}

// CharacteristicForm — сеанс заполнения характеристики группы: общий
// комментарий плюс по черновику на каждого активного студента.
// Состояние живёт только в памяти и сбрасывается при смене ростера.
type CharacteristicForm struct {
	GroupComment string                  `json:"groupComment"`
	Students     []StudentCharacteristic `json:"students"`
}

// Initialize заменяет состояние формы: по пустому черновику на студента,
// общий комментарий очищается. Прежнее содержимое не сливается.
func (f *CharacteristicForm) Initialize(students []Student) {
	f.GroupComment = ""
	f.Students = make([]StudentCharacteristic, 0, len(students))
	for _, s := range students {
		f.Students = append(f.Students, StudentCharacteristic{
			StudentID: s.User.ID,
			FullName:  s.User.FullName(),
			Keywords:  []string{},
			appended:  make(map[string]bool),
		})
	}
}

// ToggleKeyword добавляет или убирает ключевое слово у студента.
// При добавлении буллет с текстом слова дописывается в комментарий,
// но только если этот id ещё не дописывался.
func (f *CharacteristicForm) ToggleKeyword(studentIndex int, keywordID string) bool {
	if studentIndex < 0 || studentIndex >= len(f.Students) {
		return false
	}
	sc := &f.Students[studentIndex]

	for i, id := range sc.Keywords {
		if id == keywordID {
			sc.Keywords = append(sc.Keywords[:i], sc.Keywords[i+1:]...)
			return true
		}
	}

	sc.Keywords = append(sc.Keywords, keywordID)
	if kw := KeywordByID(keywordID); kw != nil {
		sc.appendKeywordLabel(keywordID, kw.Text)
	}
	return true
}

func (sc *StudentCharacteristic) appendKeywordLabel(keywordID, label string) {
	if sc.appended == nil {
		sc.appended = make(map[string]bool)
	}
	if sc.appended[keywordID] {
		return
	}
	sc.appended[keywordID] = true

	bullet := "• " + label
	if sc.Comment == "" {
		sc.Comment = bullet
		return
	}
	sc.Comment = sc.Comment + "\n" + bullet
}

// SetComment заменяет индивидуальный комментарий студента.
func (f *CharacteristicForm) SetComment(studentIndex int, text string) bool {
	if studentIndex < 0 || studentIndex >= len(f.Students) {
		return false
	}
	f.Students[studentIndex].Comment = text
	return true
}

// SetGroupComment заменяет общий комментарий группы.
func (f *CharacteristicForm) SetGroupComment(text string) {
	f.GroupComment = text
}

// HasContent сообщает, ввёл ли пользователь хоть что-то.
func (f *CharacteristicForm) HasContent() bool {
	if strings.TrimSpace(f.GroupComment) != "" {
		return true
	}
	for _, sc := range f.Students {
		if strings.TrimSpace(sc.Comment) != "" || len(sc.Keywords) > 0 {
			return true
		}
	}
	return false
}
