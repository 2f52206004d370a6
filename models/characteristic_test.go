package models

import (
	"strings"
	"testing"
)

func makeStudent(userID, lastName, firstName string) Student {
	var s Student
	s.ID = "entry-" + userID
	s.User.ID = userID
	s.User.LastName = lastName
	s.User.FirstName = firstName
	return s
}

func TestInitializeReplacesState(t *testing.T) {
	var form CharacteristicForm
	form.Initialize([]Student{makeStudent("u1", "Иванов", "Иван")})
	form.SetGroupComment("старый комментарий")
	form.SetComment(0, "текст")

	form.Initialize([]Student{
		makeStudent("u1", "Иванов", "Иван"),
		makeStudent("u2", "Петров", "Пётр"),
	})

	if form.GroupComment != "" {
		t.Error("Initialize должен очищать общий комментарий")
	}
	if len(form.Students) != 2 {
		t.Fatalf("студентов %d, ожидалось 2", len(form.Students))
	}
	if form.Students[0].Comment != "" || len(form.Students[0].Keywords) != 0 {
		t.Error("Initialize должен сбрасывать черновики студентов")
	}
	if form.Students[1].FullName != "Петров Пётр" {
		t.Errorf("FullName = %q", form.Students[1].FullName)
	}
}

func TestToggleKeywordAppendsBullet(t *testing.T) {
	var form CharacteristicForm
	form.Initialize([]Student{makeStudent("u1", "Иванов", "Иван")})

	if !form.ToggleKeyword(0, "1") {
		t.Fatal("переключение существующего студента должно удаваться")
	}
	sc := form.Students[0]
	if len(sc.Keywords) != 1 || sc.Keywords[0] != "1" {
		t.Fatalf("Keywords = %v", sc.Keywords)
	}
	if sc.Comment != "• Хорошо учится" {
		t.Errorf("Comment = %q", sc.Comment)
	}

	form.ToggleKeyword(0, "7")
	if got := form.Students[0].Comment; got != "• Хорошо учится\n• Ответственный" {
		t.Errorf("Comment = %q", got)
	}
}

func TestToggleKeywordRemoveKeepsComment(t *testing.T) {
	var form CharacteristicForm
	form.Initialize([]Student{makeStudent("u1", "Иванов", "Иван")})

	form.ToggleKeyword(0, "1")
	form.ToggleKeyword(0, "1")

	sc := form.Students[0]
	if len(sc.Keywords) != 0 {
		t.Errorf("после снятия Keywords = %v", sc.Keywords)
	}
	// Комментарий пользователь мог уже править, буллет не откатывается
	if sc.Comment != "• Хорошо учится" {
		t.Errorf("Comment = %q", sc.Comment)
	}
}

func TestToggleKeywordNoDuplicateBullet(t *testing.T) {
	var form CharacteristicForm
	form.Initialize([]Student{makeStudent("u1", "Иванов", "Иван")})

	form.ToggleKeyword(0, "1")
	form.ToggleKeyword(0, "1") // снятие
	form.ToggleKeyword(0, "1") // повторное включение

	sc := form.Students[0]
	if len(sc.Keywords) != 1 {
		t.Errorf("Keywords = %v", sc.Keywords)
	}
	if n := strings.Count(sc.Comment, "Хорошо учится"); n != 1 {
		t.Errorf("буллет продублирован %d раз: %q", n, sc.Comment)
	}
}

func TestToggleKeywordSubstringLabels(t *testing.T) {
	// "Посещает все занятия" (13) содержит подстроку-ловушку для
	// "Пропускает занятия" (14): дописывание считается по id, не по тексту
	var form CharacteristicForm
	form.Initialize([]Student{makeStudent("u1", "Иванов", "Иван")})

	form.ToggleKeyword(0, "13")
	form.ToggleKeyword(0, "14")

	sc := form.Students[0]
	if !strings.Contains(sc.Comment, "• Посещает все занятия") {
		t.Errorf("нет буллета посещаемости: %q", sc.Comment)
	}
	if !strings.Contains(sc.Comment, "• Пропускает занятия") {
		t.Errorf("нет буллета пропусков: %q", sc.Comment)
	}
}

func TestToggleKeywordOutOfRange(t *testing.T) {
	var form CharacteristicForm
	form.Initialize([]Student{makeStudent("u1", "Иванов", "Иван")})

	if form.ToggleKeyword(-1, "1") || form.ToggleKeyword(5, "1") {
		t.Error("индекс вне ростера должен отклоняться")
	}
}

func TestHasContent(t *testing.T) {
	var form CharacteristicForm
	form.Initialize([]Student{makeStudent("u1", "Иванов", "Иван")})

	if form.HasContent() {
		t.Error("пустая форма не содержит контента")
	}

	form.SetGroupComment("   ")
	if form.HasContent() {
		t.Error("пробельный комментарий не считается контентом")
	}

	form.SetComment(0, "усердный студент")
	if !form.HasContent() {
		t.Error("комментарий студента — это контент")
	}

	form.Initialize([]Student{makeStudent("u1", "Иванов", "Иван")})
	form.ToggleKeyword(0, "1")
	if !form.HasContent() {
		t.Error("выбранное ключевое слово — это контент")
	}
}
