package controllers

import (
	"ak_dashboard/middlewares"
	"ak_dashboard/models"
	"ak_dashboard/services"

	"github.com/gofiber/fiber/v2"
)

// Dashboard — главная страница: профиль преподавателя и его дисциплины.
func Dashboard(c *fiber.Ctx) error {
	session := middlewares.SessionFromCtx(c)

	info, err := services.GetTeacherInfo(session)
	if err != nil {
		return platformError(c, err)
	}

	return c.Render("dashboard", fiber.Map{
		"FullName":        info.FullName(),
		"Email":           info.Email,
		"Organization":    info.Organization(),
		"Suborganization": info.Suborganization(),
		"Disciplines":     activeDisciplines(info),
	})
}

// Disciplines — страница списка дисциплин преподавателя.
func Disciplines(c *fiber.Ctx) error {
	session := middlewares.SessionFromCtx(c)

	info, err := services.GetTeacherInfo(session)
	if err != nil {
		return platformError(c, err)
	}

	return c.Render("disciplines", fiber.Map{
		"FullName":    info.FullName(),
		"Disciplines": activeDisciplines(info),
	})
}

// activeDisciplines отбрасывает архивные дисциплины.
func activeDisciplines(info *models.TeacherInfo) []models.Discipline {
	var out []models.Discipline
	for _, ad := range info.Teacher.AssignedDisciplines {
		if ad.Discipline.ArchivedAt != "" {
			continue
		}
		out = append(out, ad.Discipline)
	}
	return out
}

// Groups — страница учебных групп выбранной дисциплины.
func Groups(c *fiber.Ctx) error {
	session := middlewares.SessionFromCtx(c)
	disciplineID := c.Params("disciplineId")
	disciplineName := c.Query("name")

	groups, err := services.GetLearningGroups(session, disciplineID)
	if err != nil {
		return platformError(c, err)
	}

	active := make([]models.LearningGroup, 0, len(groups))
	for _, g := range groups {
		if !g.IsArchived {
			active = append(active, g)
		}
	}

	return c.Render("groups", fiber.Map{
		"DisciplineID":   disciplineID,
		"DisciplineName": disciplineName,
		"Groups":         active,
	})
}

// studentRow — строка студента на странице группы.
type studentRow struct {
	FullName    string
	MainScore   float64
	RetakeScore float64
	TotalScore  float64
	Expelled    bool
}

// GroupStudents — страница студентов группы с баллами по дисциплине.
// Журнал баллов может быть пуст, тогда показываем ростер без баллов.
func GroupStudents(c *fiber.Ctx) error {
	session := middlewares.SessionFromCtx(c)
	disciplineID := c.Params("disciplineId")
	groupID := c.Params("groupId")
	disciplineName := c.Query("discipline")
	groupName := c.Query("name")

	roster, err := services.SearchStudentsInGroup(session, groupID)
	if err != nil {
		return platformError(c, err)
	}

	var avgScore *float64
	scoreByUser := make(map[string]models.Score)
	if journal, err := services.GetStudentScores(session, disciplineID, groupID); err == nil {
		avgScore = journal.AverageScore
		for _, s := range journal.Students {
			scoreByUser[s.Student.User.ID] = s
		}
	}

	rows := make([]studentRow, 0, len(roster))
	for _, st := range roster {
		row := studentRow{
			FullName: st.User.FullName(),
			Expelled: st.ExpelledFrom(groupID),
		}
		if score, ok := scoreByUser[st.User.ID]; ok {
			row.MainScore = score.MainScore
			row.RetakeScore = score.RetakeScore
			row.TotalScore = score.Total()
		}
		rows = append(rows, row)
	}

	return c.Render("students", fiber.Map{
		"DisciplineID":   disciplineID,
		"DisciplineName": disciplineName,
		"GroupID":        groupID,
		"GroupName":      groupName,
		"AverageScore":   avgScore,
		"Students":       rows,
	})
}
