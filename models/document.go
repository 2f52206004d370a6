package models

import "time"

// StudentEntry — строка студента в готовом документе: разрешённые имя,
// баллы, подписи ключевых слов и комментарий.
type StudentEntry struct {
	FullName    string   `json:"fullName"`
	MainScore   float64  `json:"mainScore"`
	RetakeScore float64  `json:"retakeScore"`
	TotalScore  float64  `json:"totalScore"`
	Keywords    []string `json:"keywords"`
	Comment     string   `json:"comment"`
}

// DocumentPayload — полный снимок данных для предпросмотра и экспорта.
// Собирается заново при каждом обращении, не кешируется.
type DocumentPayload struct {
	DisciplineName string         `json:"disciplineName"`
	GroupName      string         `json:"groupName"`
	AverageScore   *float64       `json:"averageScore"`
	Date           string         `json:"date"`
	GroupComment   string         `json:"groupComment"`
	Students       []StudentEntry `json:"students"`
}

// BuildDocumentPayload склеивает ростер, баллы и черновики формы в снимок
// документа. Отчисленные из группы студенты не попадают в результат;
// отсутствующие баллы считаются нулевыми; id ключевых слов разрешаются
// в подписи через справочник.
func BuildDocumentPayload(disciplineName, groupName, groupID string, avgScore *float64, roster []Student, scores []Score, form *CharacteristicForm) DocumentPayload {
	scoreByUser := make(map[string]Score, len(scores))
	for _, s := range scores {
		scoreByUser[s.Student.User.ID] = s
	}

	draftByUser := make(map[string]StudentCharacteristic)
	if form != nil {
		for _, sc := range form.Students {
			draftByUser[sc.StudentID] = sc
		}
	}

	payload := DocumentPayload{
		DisciplineName: disciplineName,
		GroupName:      groupName,
		AverageScore:   avgScore,
		Date:           time.Now().Format("02.01.2006"),
	}
	if form != nil {
		payload.GroupComment = form.GroupComment
	}

	for _, st := range roster {
		if st.ExpelledFrom(groupID) {
			continue
		}

		entry := StudentEntry{FullName: st.User.FullName()}
		if score, ok := scoreByUser[st.User.ID]; ok {
			entry.MainScore = score.MainScore
			entry.RetakeScore = score.RetakeScore
		}
		entry.TotalScore = entry.MainScore + entry.RetakeScore

		if draft, ok := draftByUser[st.User.ID]; ok {
			entry.Comment = draft.Comment
			for _, id := range draft.Keywords {
				if kw := KeywordByID(id); kw != nil {
					entry.Keywords = append(entry.Keywords, kw.Text)
				}
			}
		}

		payload.Students = append(payload.Students, entry)
	}

	return payload
}
