package models

// Типы данных удалённого GraphQL API. Платформа — единственный источник
// правды по студентам, группам и баллам; здесь мы их только читаем.

// RemoteUser — ФИО и id пользователя платформы.
type RemoteUser struct {
	ID         string `json:"id"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	MiddleName string `json:"middleName"`
	Avatar     string `json:"avatar"`
}

// FullName собирает "Фамилия Имя Отчество", пропуская пустые части.
func (u RemoteUser) FullName() string {
	name := ""
	for _, part := range []string{u.LastName, u.FirstName, u.MiddleName} {
		if part == "" {
			continue
		}
		if name != "" {
			name += " "
		}
		name += part
	}
	return name
}

// GroupMembership — запись о членстве студента в учебной группе.
type GroupMembership struct {
	LearningGroupID string  `json:"learningGroupId"`
	IsActivated     bool    `json:"isActivated"`
	EnrolledAt      string  `json:"enrolledAt"`
	ExpelledAt      *string `json:"expelledAt"`
}

// Expelled сообщает, отчислен ли студент из группы.
func (m GroupMembership) Expelled() bool {
	return m.ExpelledAt != nil && *m.ExpelledAt != ""
}

// Student — студент из ростера группы.
type Student struct {
	ID   string `json:"id"`
	User struct {
		RemoteUser
		Student struct {
			LearningGroups []GroupMembership `json:"learningGroups"`
		} `json:"student"`
	} `json:"user"`
}

// ExpelledFrom сообщает, есть ли у студента запись об отчислении из группы.
func (s Student) ExpelledFrom(groupID string) bool {
	for _, m := range s.User.Student.LearningGroups {
		if m.LearningGroupID == groupID && m.Expelled() {
			return true
		}
	}
	return false
}

// Score — баллы студента по дисциплине. Итог всегда считается на чтении,
// отдельно не хранится.
type Score struct {
	StudentID    string `json:"studentId"`
	DisciplineID string `json:"disciplineId"`
	Student      struct {
		ID   string     `json:"id"`
		User RemoteUser `json:"user"`
	} `json:"student"`
	MainScore                   float64 `json:"scoreForAnsweredTasks"`
	RetakeScore                 float64 `json:"scoreForAnsweredRetakeTasks"`
	HasRetake                   bool    `json:"hasRetake"`
	IsRespectfulReasonForRetake bool    `json:"isRespectfulReasonForRetake"`
}

// Total возвращает сумму основных баллов и баллов за пересдачу.
func (s Score) Total() float64 {
	return s.MainScore + s.RetakeScore
}

// ScoreJournalGroup — журнал баллов одной группы по дисциплине.
type ScoreJournalGroup struct {
	AverageScore    *float64 `json:"averageScore"`
	LearningGroupID string   `json:"learningGroupId"`
	Discipline      struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"discipline"`
	Students []Score `json:"students"`
}

// LearningGroup — учебная группа дисциплины.
type LearningGroup struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	IsArchived bool   `json:"isArchived"`
	Type       string `json:"type"`
}

// Discipline — дисциплина, закреплённая за преподавателем.
type Discipline struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Code       string `json:"code"`
	ArchivedAt string `json:"archivedAt"`
}

// TeacherInfo — профиль преподавателя из getMe.
type TeacherInfo struct {
	RemoteUser
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`

	AssignedSuborganizations []struct {
		Suborganization struct {
			Name         string `json:"name"`
			Organization struct {
				Name string `json:"name"`
			} `json:"organization"`
		} `json:"suborganization"`
	} `json:"assignedSuborganizations"`

	Teacher struct {
		AssignedDisciplines []struct {
			Discipline Discipline `json:"discipline"`
		} `json:"assignedDisciplines_V2"`
	} `json:"teacher"`
}

// Organization возвращает название организации преподавателя.
func (t TeacherInfo) Organization() string {
	if len(t.AssignedSuborganizations) == 0 {
		return ""
	}
	return t.AssignedSuborganizations[0].Suborganization.Organization.Name
}

// Suborganization возвращает название подразделения преподавателя.
func (t TeacherInfo) Suborganization() string {
	if len(t.AssignedSuborganizations) == 0 {
		return ""
	}
	return t.AssignedSuborganizations[0].Suborganization.Name
}
