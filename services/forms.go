package services

import (
	"sync"

	"ak_dashboard/models"

	"github.com/google/uuid"
)

// FormSession — живущий в памяти сеанс заполнения характеристики одной
// группы. Привязан к email преподавателя; контекст (дисциплина, группа)
// хранится рядом с формой, чтобы экспорт не ходил за ним повторно.
type FormSession struct {
	ID             string
	OwnerEmail     string
	DisciplineID   string
	DisciplineName string
	GroupID        string
	GroupName      string

	Form     models.CharacteristicForm
	Roster   []models.Student
	Scores   []models.Score
	AvgScore *float64

	generating bool
	Mutex      sync.Mutex
}

// BeginExport переводит сеанс в состояние генерации документа.
// Возвращает false, если генерация уже идёт — параллельный экспорт
// одной формы отклоняется.
func (fs *FormSession) BeginExport() bool {
	fs.Mutex.Lock()
	defer fs.Mutex.Unlock()
	if fs.generating {
		return false
	}
	fs.generating = true
	return true
}

// EndExport безусловно возвращает сеанс в исходное состояние.
func (fs *FormSession) EndExport() {
	fs.Mutex.Lock()
	fs.generating = false
	fs.Mutex.Unlock()
}

var formSessions = make(map[string]*FormSession)
var formsMutex sync.Mutex

// CreateFormSession создаёт сеанс формы для ростера группы. Форма
// инициализируется только по активным (неотчисленным) студентам.
// Прежний сеанс того же преподавателя по той же группе заменяется.
func CreateFormSession(ownerEmail, disciplineID, disciplineName, groupID, groupName string, roster []models.Student, scores []models.Score, avgScore *float64) *FormSession {
	active := make([]models.Student, 0, len(roster))
	for _, st := range roster {
		if !st.ExpelledFrom(groupID) {
			active = append(active, st)
		}
	}

	fs := &FormSession{
		ID:             uuid.NewString(),
		OwnerEmail:     ownerEmail,
		DisciplineID:   disciplineID,
		DisciplineName: disciplineName,
		GroupID:        groupID,
		GroupName:      groupName,
		Roster:         roster,
		Scores:         scores,
		AvgScore:       avgScore,
	}
	fs.Form.Initialize(active)

	formsMutex.Lock()
	for id, old := range formSessions {
		if old.OwnerEmail == ownerEmail && old.GroupID == groupID && old.DisciplineID == disciplineID {
			delete(formSessions, id)
		}
	}
	formSessions[fs.ID] = fs
	formsMutex.Unlock()

	return fs
}

// GetFormSession возвращает сеанс по id, проверяя владельца. Отсутствие
// сеанса означает, что пользователь ушёл со страницы — поздние записи
// просто не находят адресата.
func GetFormSession(id, ownerEmail string) *FormSession {
	formsMutex.Lock()
	defer formsMutex.Unlock()
	fs, ok := formSessions[id]
	if !ok || fs.OwnerEmail != ownerEmail {
		return nil
	}
	return fs
}

// DropFormSession удаляет сеанс формы.
func DropFormSession(id string) {
	formsMutex.Lock()
	delete(formSessions, id)
	formsMutex.Unlock()
}

// BuildPayload собирает снимок документа по текущему состоянию сеанса.
func (fs *FormSession) BuildPayload() models.DocumentPayload {
	fs.Mutex.Lock()
	defer fs.Mutex.Unlock()
	return models.BuildDocumentPayload(
		fs.DisciplineName, fs.GroupName, fs.GroupID,
		fs.AvgScore, fs.Roster, fs.Scores, &fs.Form,
	)
}
