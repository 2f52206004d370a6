package services

import (
	"sync"
	"testing"

	"ak_dashboard/models"
)

func rosterStudent(userID, lastName string, expelledFrom string) models.Student {
	var s models.Student
	s.User.ID = userID
	s.User.LastName = lastName
	if expelledFrom != "" {
		expelledAt := "2026-02-01T00:00:00Z"
		s.User.Student.LearningGroups = append(s.User.Student.LearningGroups, models.GroupMembership{
			LearningGroupID: expelledFrom,
			ExpelledAt:      &expelledAt,
		})
	}
	return s
}

func TestCreateFormSessionFiltersExpelled(t *testing.T) {
	roster := []models.Student{
		rosterStudent("u1", "Иванов", ""),
		rosterStudent("u2", "Сидоров", "g1"),
	}

	fs := CreateFormSession("teacher@a-k.ru", "d1", "Математика", "g1", "ИС-21", roster, nil, nil)
	defer DropFormSession(fs.ID)

	if len(fs.Form.Students) != 1 {
		t.Fatalf("в форме %d студентов, ожидался 1", len(fs.Form.Students))
	}
	if fs.Form.Students[0].StudentID != "u1" {
		t.Errorf("в форме оказался %q", fs.Form.Students[0].StudentID)
	}
	// Ростер хранится целиком, фильтрация повторяется при сборке снимка
	if len(fs.Roster) != 2 {
		t.Errorf("ростер усечён: %d", len(fs.Roster))
	}
}

func TestCreateFormSessionReplacesPrevious(t *testing.T) {
	roster := []models.Student{rosterStudent("u1", "Иванов", "")}

	first := CreateFormSession("teacher@a-k.ru", "d1", "Математика", "g1", "ИС-21", roster, nil, nil)
	second := CreateFormSession("teacher@a-k.ru", "d1", "Математика", "g1", "ИС-21", roster, nil, nil)
	defer DropFormSession(second.ID)

	if GetFormSession(first.ID, "teacher@a-k.ru") != nil {
		t.Error("прежний сеанс той же группы должен замещаться")
	}
	if GetFormSession(second.ID, "teacher@a-k.ru") == nil {
		t.Error("новый сеанс не найден")
	}
}

func TestGetFormSessionChecksOwner(t *testing.T) {
	roster := []models.Student{rosterStudent("u1", "Иванов", "")}
	fs := CreateFormSession("teacher@a-k.ru", "d1", "Математика", "g1", "ИС-21", roster, nil, nil)
	defer DropFormSession(fs.ID)

	if GetFormSession(fs.ID, "другой@a-k.ru") != nil {
		t.Error("чужой сеанс не должен выдаваться")
	}
	if GetFormSession("нет-такого", "teacher@a-k.ru") != nil {
		t.Error("несуществующий id должен возвращать nil")
	}
}

func TestBeginExportRejectsConcurrent(t *testing.T) {
	roster := []models.Student{rosterStudent("u1", "Иванов", "")}
	fs := CreateFormSession("teacher@a-k.ru", "d1", "Математика", "g1", "ИС-21", roster, nil, nil)
	defer DropFormSession(fs.ID)

	if !fs.BeginExport() {
		t.Fatal("первый экспорт должен стартовать")
	}
	if fs.BeginExport() {
		t.Error("параллельный экспорт должен отклоняться")
	}

	fs.EndExport()
	if !fs.BeginExport() {
		t.Error("после завершения экспорт снова доступен")
	}
	fs.EndExport()
}

func TestBeginExportUnderContention(t *testing.T) {
	roster := []models.Student{rosterStudent("u1", "Иванов", "")}
	fs := CreateFormSession("teacher@a-k.ru", "d1", "Математика", "g1", "ИС-21", roster, nil, nil)
	defer DropFormSession(fs.ID)

	var wg sync.WaitGroup
	var mu sync.Mutex
	started := 0
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if fs.BeginExport() {
				mu.Lock()
				started++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if started != 1 {
		t.Errorf("генерацию начали %d горутин, ожидалась 1", started)
	}
	fs.EndExport()
}

func TestBuildPayloadUsesSessionContext(t *testing.T) {
	roster := []models.Student{rosterStudent("u1", "Иванов", "")}
	avg := 75.0
	fs := CreateFormSession("teacher@a-k.ru", "d1", "Математика", "g1", "ИС-21", roster, nil, &avg)
	defer DropFormSession(fs.ID)

	fs.Form.SetGroupComment("Дружная группа")

	payload := fs.BuildPayload()
	if payload.DisciplineName != "Математика" || payload.GroupName != "ИС-21" {
		t.Errorf("контекст снимка: %q / %q", payload.DisciplineName, payload.GroupName)
	}
	if payload.AverageScore == nil || *payload.AverageScore != 75 {
		t.Errorf("AverageScore = %v", payload.AverageScore)
	}
	if payload.GroupComment != "Дружная группа" {
		t.Errorf("GroupComment = %q", payload.GroupComment)
	}
}
