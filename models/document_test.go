package models

import (
	"testing"
	"time"
)

func makeScore(userID string, main, retake float64) Score {
	var s Score
	s.Student.User.ID = userID
	s.MainScore = main
	s.RetakeScore = retake
	return s
}

func expelStudent(s *Student, groupID string) {
	expelledAt := "2026-02-01T00:00:00Z"
	s.User.Student.LearningGroups = append(s.User.Student.LearningGroups, GroupMembership{
		LearningGroupID: groupID,
		ExpelledAt:      &expelledAt,
	})
}

func TestBuildDocumentPayload(t *testing.T) {
	const groupID = "g1"

	ivanov := makeStudent("u1", "Иванов", "Иван")
	petrov := makeStudent("u2", "Петров", "Пётр")
	sidorov := makeStudent("u3", "Сидоров", "Сидор")
	expelStudent(&sidorov, groupID)

	roster := []Student{ivanov, petrov, sidorov}
	scores := []Score{
		makeScore("u1", 40, 10),
		makeScore("u2", 30, 0),
	}

	var form CharacteristicForm
	form.Initialize([]Student{ivanov, petrov})
	form.SetGroupComment("Дружная группа")
	form.ToggleKeyword(0, "1")
	form.SetComment(1, "Старательный студент")

	avg := 87.5
	payload := BuildDocumentPayload("Математика", "ИС-21", groupID, &avg, roster, scores, &form)

	if payload.DisciplineName != "Математика" || payload.GroupName != "ИС-21" {
		t.Errorf("заголовок: %q / %q", payload.DisciplineName, payload.GroupName)
	}
	if payload.AverageScore == nil || *payload.AverageScore != 87.5 {
		t.Errorf("AverageScore = %v", payload.AverageScore)
	}
	if payload.GroupComment != "Дружная группа" {
		t.Errorf("GroupComment = %q", payload.GroupComment)
	}
	if payload.Date != time.Now().Format("02.01.2006") {
		t.Errorf("Date = %q", payload.Date)
	}

	// Отчисленный Сидоров не попадает в документ
	if len(payload.Students) != 2 {
		t.Fatalf("студентов %d, ожидалось 2", len(payload.Students))
	}

	first := payload.Students[0]
	if first.FullName != "Иванов Иван" {
		t.Errorf("первый студент %q", first.FullName)
	}
	if first.MainScore != 40 || first.RetakeScore != 10 || first.TotalScore != 50 {
		t.Errorf("баллы Иванова: %v/%v/%v", first.MainScore, first.RetakeScore, first.TotalScore)
	}
	if len(first.Keywords) != 1 || first.Keywords[0] != "Хорошо учится" {
		t.Errorf("ключевые слова Иванова: %v", first.Keywords)
	}

	second := payload.Students[1]
	if second.TotalScore != 30 {
		t.Errorf("итог Петрова = %v", second.TotalScore)
	}
	if second.Comment != "Старательный студент" {
		t.Errorf("комментарий Петрова = %q", second.Comment)
	}
}

func TestBuildDocumentPayloadMissingScores(t *testing.T) {
	roster := []Student{makeStudent("u1", "Иванов", "Иван")}

	payload := BuildDocumentPayload("Математика", "ИС-21", "g1", nil, roster, nil, nil)

	if payload.AverageScore != nil {
		t.Error("без журнала средний балл отсутствует")
	}
	if len(payload.Students) != 1 {
		t.Fatalf("студентов %d", len(payload.Students))
	}
	st := payload.Students[0]
	if st.MainScore != 0 || st.RetakeScore != 0 || st.TotalScore != 0 {
		t.Errorf("баллы без журнала должны быть нулевыми: %+v", st)
	}
}

func TestBuildDocumentPayloadDanglingKeyword(t *testing.T) {
	ivanov := makeStudent("u1", "Иванов", "Иван")

	var form CharacteristicForm
	form.Initialize([]Student{ivanov})
	form.Students[0].Keywords = []string{"1", "не-существует"}

	payload := BuildDocumentPayload("Математика", "ИС-21", "g1", nil, []Student{ivanov}, nil, &form)

	if len(payload.Students[0].Keywords) != 1 {
		t.Errorf("висячий id должен пропускаться: %v", payload.Students[0].Keywords)
	}
}
