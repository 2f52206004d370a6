package controllers

import (
	"ak_dashboard/middlewares"
	"ak_dashboard/models"
	"ak_dashboard/services"

	"github.com/gofiber/fiber/v2"
)

// AI — клиент улучшения текстов, подставляется из main.
var AI *services.AIClient

// CharacteristicsPage открывает форму характеристики группы: загружает
// ростер и журнал баллов, создаёт сеанс формы и отдаёт страницу.
func CharacteristicsPage(c *fiber.Ctx) error {
	session := middlewares.SessionFromCtx(c)
	disciplineID := c.Params("disciplineId")
	groupID := c.Params("groupId")
	disciplineName := c.Query("discipline")
	groupName := c.Query("name")

	roster, err := services.SearchStudentsInGroup(session, groupID)
	if err != nil {
		return platformError(c, err)
	}

	var scores []models.Score
	var avgScore *float64
	if journal, err := services.GetStudentScores(session, disciplineID, groupID); err == nil {
		scores = journal.Students
		avgScore = journal.AverageScore
	}

	fs := services.CreateFormSession(session.Email, disciplineID, disciplineName, groupID, groupName, roster, scores, avgScore)

	return c.Render("characteristics", fiber.Map{
		"FormID":         fs.ID,
		"DisciplineName": disciplineName,
		"GroupName":      groupName,
		"Students":       fs.Form.Students,
		"Keywords":       models.KeywordCatalog,
	})
}

// formByCtx находит сеанс формы по параметру маршрута с проверкой
// владельца. Отсутствие сеанса — 404: пользователь ушёл со страницы,
// поздние записи адресата не находят.
func formByCtx(c *fiber.Ctx) *services.FormSession {
	session := middlewares.SessionFromCtx(c)
	return services.GetFormSession(c.Params("formId"), session.Email)
}

// Keywords возвращает справочник ключевых характеристик, опционально
// отфильтрованный по категории.
func Keywords(c *fiber.Ctx) error {
	return c.JSON(models.KeywordsByCategory(c.Query("category")))
}

// ToggleKeyword добавляет или убирает ключевое слово у студента формы.
func ToggleKeyword(c *fiber.Ctx) error {
	fs := formByCtx(c)
	if fs == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Форма не найдена"})
	}

	type ToggleInput struct {
		StudentIndex int    `json:"studentIndex"`
		KeywordID    string `json:"keywordId" validate:"required"`
	}
	var input ToggleInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalidFormat"})
	}
	if err := validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalidFields"})
	}

	fs.Mutex.Lock()
	ok := fs.Form.ToggleKeyword(input.StudentIndex, input.KeywordID)
	var student *models.StudentCharacteristic
	if ok {
		student = &fs.Form.Students[input.StudentIndex]
	}
	fs.Mutex.Unlock()

	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Студент не найден"})
	}
	return c.JSON(student)
}

// SetComment заменяет индивидуальный комментарий студента.
func SetComment(c *fiber.Ctx) error {
	fs := formByCtx(c)
	if fs == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Форма не найдена"})
	}

	type CommentInput struct {
		StudentIndex int    `json:"studentIndex"`
		Text         string `json:"text"`
	}
	var input CommentInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalidFormat"})
	}

	fs.Mutex.Lock()
	ok := fs.Form.SetComment(input.StudentIndex, input.Text)
	fs.Mutex.Unlock()

	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Студент не найден"})
	}
	return c.JSON(fiber.Map{"success": true})
}

// SetGroupComment заменяет общий комментарий группы.
func SetGroupComment(c *fiber.Ctx) error {
	fs := formByCtx(c)
	if fs == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Форма не найдена"})
	}

	type GroupCommentInput struct {
		Text string `json:"text"`
	}
	var input GroupCommentInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalidFormat"})
	}

	fs.Mutex.Lock()
	fs.Form.SetGroupComment(input.Text)
	fs.Mutex.Unlock()

	return c.JSON(fiber.Map{"success": true})
}

// Enhance улучшает один комментарий формы: общий (target "group") или
// индивидуальный по индексу студента.
func Enhance(c *fiber.Ctx) error {
	fs := formByCtx(c)
	if fs == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Форма не найдена"})
	}

	type EnhanceInput struct {
		Target       string `json:"target"`
		StudentIndex int    `json:"studentIndex"`
	}
	var input EnhanceInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalidFormat"})
	}

	if input.Target == "group" {
		fs.Mutex.Lock()
		text := fs.Form.GroupComment
		fs.Mutex.Unlock()

		result := AI.EnhanceGroup(text)

		if result.Success {
			fs.Mutex.Lock()
			fs.Form.SetGroupComment(result.EnhancedText)
			fs.Mutex.Unlock()
		}
		return c.JSON(result)
	}

	fs.Mutex.Lock()
	if input.StudentIndex < 0 || input.StudentIndex >= len(fs.Form.Students) {
		fs.Mutex.Unlock()
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Студент не найден"})
	}
	text := fs.Form.Students[input.StudentIndex].Comment
	fs.Mutex.Unlock()

	result := AI.EnhanceStudent(text)

	if result.Success {
		fs.Mutex.Lock()
		fs.Form.SetComment(input.StudentIndex, result.EnhancedText)
		fs.Mutex.Unlock()
	}
	return c.JSON(result)
}

// EnhanceAll последовательно улучшает все непустые комментарии формы.
// Сетевые вызовы идут под мьютексом сеанса: параллельные правки формы
// во время пакетного прогона только запутали бы результат.
func EnhanceAll(c *fiber.Ctx) error {
	fs := formByCtx(c)
	if fs == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Форма не найдена"})
	}

	fs.Mutex.Lock()
	items := AI.EnhanceAll(&fs.Form)
	fs.Mutex.Unlock()

	return c.JSON(fiber.Map{"items": items})
}

// GenerateFromKeywords составляет характеристику студента заново по его
// ключевым словам и уровню успеваемости.
func GenerateFromKeywords(c *fiber.Ctx) error {
	fs := formByCtx(c)
	if fs == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Форма не найдена"})
	}

	type GenerateInput struct {
		StudentIndex  int    `json:"studentIndex"`
		AcademicLevel string `json:"academicLevel"`
	}
	var input GenerateInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalidFormat"})
	}

	fs.Mutex.Lock()
	if input.StudentIndex < 0 || input.StudentIndex >= len(fs.Form.Students) {
		fs.Mutex.Unlock()
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Студент не найден"})
	}
	sc := fs.Form.Students[input.StudentIndex]
	fs.Mutex.Unlock()

	var labels []string
	for _, id := range sc.Keywords {
		if kw := models.KeywordByID(id); kw != nil {
			labels = append(labels, kw.Text)
		}
	}

	result := AI.GenerateFromKeywords(sc.FullName, labels, input.AcademicLevel)

	if result.Success {
		fs.Mutex.Lock()
		fs.Form.SetComment(input.StudentIndex, result.EnhancedText)
		fs.Mutex.Unlock()
	}
	return c.JSON(result)
}

// Preview возвращает текстовый предпросмотр документа по текущему
// состоянию формы.
func Preview(c *fiber.Ctx) error {
	fs := formByCtx(c)
	if fs == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Форма не найдена"})
	}

	payload := fs.BuildPayload()
	return c.JSON(fiber.Map{"preview": services.RenderPreview(payload)})
}

// Export собирает документ выбранного формата и отдаёт его на скачивание.
// Параллельный экспорт одной формы отклоняется с 409.
func Export(c *fiber.Ctx) error {
	fs := formByCtx(c)
	if fs == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Форма не найдена"})
	}

	if !fs.BeginExport() {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Документ уже генерируется"})
	}
	defer fs.EndExport()

	payload := fs.BuildPayload()
	file, err := services.ExportDocument(payload, c.Query("format"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	c.Set(fiber.HeaderContentType, file.MIME)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename*=UTF-8''`+services.EncodeFileName(file.Name))
	return c.Send(file.Data)
}

// CloseForm удаляет сеанс формы при уходе со страницы.
func CloseForm(c *fiber.Ctx) error {
	fs := formByCtx(c)
	if fs != nil {
		services.DropFormSession(fs.ID)
	}
	return c.JSON(fiber.Map{"success": true})
}

// AITest — проверка доступности сервисов генерации: прогоняет текст
// через цепочку провайдеров и возвращает результат как есть.
func AITest(c *fiber.Ctx) error {
	type TestInput struct {
		Text string `json:"text" validate:"required"`
		Kind string `json:"kind"`
	}
	var input TestInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalidFormat"})
	}
	if err := validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Нет текста для улучшения"})
	}

	var result services.EnhanceResult
	if input.Kind == "group" {
		result = AI.EnhanceGroup(input.Text)
	} else {
		result = AI.EnhanceStudent(input.Text)
	}
	return c.JSON(result)
}
