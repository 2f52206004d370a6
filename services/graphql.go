package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"ak_dashboard/config"
	"ak_dashboard/models"

	"github.com/bytedance/sonic"
)

// eduClient — общий HTTP-клиент запросов к платформе.
// Таймауты клиента по умолчанию, своей политики повторов нет.
var eduClient = &http.Client{Timeout: 30 * time.Second}

type graphqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// ErrUnauthorized возвращается, когда платформа отвергла токен сессии.
var ErrUnauthorized = fmt.Errorf("сессия недействительна")

// queryEdu выполняет GraphQL-запрос к платформе и раскладывает data в out.
func queryEdu(session *Session, query string, variables map[string]interface{}, out interface{}) error {
	body, err := sonic.Marshal(graphqlRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("сериализация запроса: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, config.EduAPIURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if session != nil && session.AccessToken != "" {
		req.Header.Set("Authorization", "Bearer "+session.AccessToken)
	}

	resp, err := eduClient.Do(req)
	if err != nil {
		return fmt.Errorf("запрос к платформе: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("платформа ответила статусом %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var envelope graphqlResponse
	if err := sonic.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("разбор ответа платформы: %w", err)
	}
	if len(envelope.Errors) > 0 {
		return fmt.Errorf("ошибка платформы: %s", envelope.Errors[0].Message)
	}
	if out != nil {
		if err := sonic.Unmarshal(envelope.Data, out); err != nil {
			return fmt.Errorf("разбор данных платформы: %w", err)
		}
	}
	return nil
}

const signInQuery = `
query SignIn($input: SignInInput!) {
  signIn(input: $input) {
    user { id isLead }
    accessToken
  }
}`

// SignIn проверяет учётные данные на платформе и возвращает готовую сессию.
func SignIn(email, password string) (*Session, error) {
	var data struct {
		SignIn struct {
			User struct {
				ID     string `json:"id"`
				IsLead bool   `json:"isLead"`
			} `json:"user"`
			AccessToken string `json:"accessToken"`
		} `json:"signIn"`
	}
	err := queryEdu(nil, signInQuery, map[string]interface{}{
		"input": map[string]interface{}{"email": email, "password": password},
	}, &data)
	if err != nil {
		return nil, err
	}
	if data.SignIn.AccessToken == "" {
		return nil, fmt.Errorf("платформа не вернула токен доступа")
	}
	return &Session{
		AccessToken: data.SignIn.AccessToken,
		Email:       email,
		IsLead:      data.SignIn.User.IsLead,
	}, nil
}

const getMeQuery = `
query GetMe {
  getMe {
    id firstName lastName middleName avatar email phoneNumber
    assignedSuborganizations {
      suborganization { name organization { name } }
    }
    teacher {
      assignedDisciplines_V2 {
        discipline { id name code archivedAt }
      }
    }
  }
}`

// GetTeacherInfo загружает профиль преподавателя и его дисциплины.
func GetTeacherInfo(session *Session) (*models.TeacherInfo, error) {
	var data struct {
		GetMe models.TeacherInfo `json:"getMe"`
	}
	if err := queryEdu(session, getMeQuery, nil, &data); err != nil {
		return nil, err
	}
	return &data.GetMe, nil
}

const learningGroupsQuery = `
query DisciplineLearningGroups($input: DisciplineLearningGroupsInput!) {
  disciplineLearningGroups(input: $input) {
    id name isArchived type
  }
}`

// GetLearningGroups возвращает учебные группы дисциплины.
func GetLearningGroups(session *Session, disciplineID string) ([]models.LearningGroup, error) {
	var data struct {
		DisciplineLearningGroups []models.LearningGroup `json:"disciplineLearningGroups"`
	}
	err := queryEdu(session, learningGroupsQuery, map[string]interface{}{
		"input": map[string]interface{}{
			"disciplineId": disciplineID,
			"filters":      map[string]interface{}{},
		},
	}, &data)
	if err != nil {
		return nil, err
	}
	return data.DisciplineLearningGroups, nil
}

const searchStudentsQuery = `
query SearchStudentsInLearningGroup($input: SearchStudentsInLearningGroupInput!, $learningGroupId: UUID!) {
  searchStudentsInLearningGroup(input: $input) {
    items {
      id
      user {
        id firstName lastName middleName avatar
        student {
          learningGroups(learningGroupsIds: [$learningGroupId]) {
            learningGroupId isActivated enrolledAt expelledAt
          }
        }
      }
    }
  }
}`

// SearchStudentsInGroup возвращает ростер группы с датами зачисления и
// отчисления по самой группе.
func SearchStudentsInGroup(session *Session, groupID string) ([]models.Student, error) {
	var data struct {
		SearchStudentsInLearningGroup struct {
			Items []models.Student `json:"items"`
		} `json:"searchStudentsInLearningGroup"`
	}
	err := queryEdu(session, searchStudentsQuery, map[string]interface{}{
		"input": map[string]interface{}{
			"filters": map[string]interface{}{"learningGroupId": groupID},
		},
		"learningGroupId": groupID,
	}, &data)
	if err != nil {
		return nil, err
	}
	return data.SearchStudentsInLearningGroup.Items, nil
}

const scoreJournalQuery = `
query GetDisciplineScoreJournal($input: GetDisciplineScoreJournalInput!, $learningGroupId: UUID!) {
  getDisciplineScoreJournal(input: $input) {
    learningGroups {
      averageScore
      learningGroupId
      discipline { id name }
      students(learningGroupId: $learningGroupId) {
        studentId disciplineId
        student { id user { id firstName lastName middleName } }
        scoreForAnsweredTasks scoreForAnsweredRetakeTasks
        hasRetake isRespectfulReasonForRetake
      }
    }
  }
}`

// GetStudentScores возвращает журнал баллов группы по дисциплине
// (первая группа журнала; платформа возвращает её по фильтру groupId).
func GetStudentScores(session *Session, disciplineID, groupID string) (*models.ScoreJournalGroup, error) {
	var data struct {
		GetDisciplineScoreJournal struct {
			LearningGroups []models.ScoreJournalGroup `json:"learningGroups"`
		} `json:"getDisciplineScoreJournal"`
	}
	err := queryEdu(session, scoreJournalQuery, map[string]interface{}{
		"input": map[string]interface{}{
			"disciplineId": disciplineID,
			"filters": map[string]interface{}{
				"groupId":   groupID,
				"query":     "",
				"isCurator": false,
			},
		},
		"learningGroupId": groupID,
	}, &data)
	if err != nil {
		return nil, err
	}
	if len(data.GetDisciplineScoreJournal.LearningGroups) == 0 {
		return nil, fmt.Errorf("журнал баллов по группе пуст")
	}
	return &data.GetDisciplineScoreJournal.LearningGroups[0], nil
}
