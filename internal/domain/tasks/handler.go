package tasks

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"pawpal-planner/internal/domain/pets"
	"pawpal-planner/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, petsSvc *pets.Service) {
	r.Route("/pets/{petID}/tasks", func(tr chi.Router) {
		tr.Post("/", createTaskHandler(svc, petsSvc))
		tr.Get("/", listPetTasksHandler(svc, petsSvc))
	})

	// Todas las tareas del dueño (vista ordenada, lista para el allocator).
	r.Get("/tasks", listOwnerTasksHandler(svc))

	r.Route("/tasks/{taskID}", func(tr chi.Router) {
		tr.Patch("/", updateTaskHandler(svc))
		tr.Post("/complete", completeTaskHandler(svc))
	})
}

type createTaskRequest struct {
	Title           string `json:"title"`
	DurationMinutes int    `json:"duration_minutes"`
	Priority        string `json:"priority"`
	PreferredTime   string `json:"preferred_time"` // "HH:MM", opcional
	Constraint      string `json:"constraint"`     // "before HH:MM" / "after HH:MM", opcional
	Frequency       string `json:"frequency"`      // daily|weekly|biweekly|monthly, opcional
	Date            string `json:"date"`           // YYYY-MM-DD, requerido si hay frequency
}

type taskResponse struct {
	ID              string    `json:"id"`
	PetID           string    `json:"pet_id"`
	OwnerID         string    `json:"owner_id"`
	Title           string    `json:"title"`
	DurationMinutes int       `json:"duration_minutes"`
	Priority        string    `json:"priority"`
	PreferredTime   string    `json:"preferred_time,omitempty"`
	Constraint      string    `json:"constraint,omitempty"`
	Completed       bool      `json:"completed"`
	Frequency       string    `json:"frequency,omitempty"`
	Date            string    `json:"date,omitempty"`
	ParentTaskID    string    `json:"parent_task_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func createTaskHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, ok := middleware.GetOwnerID(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		petID := chi.URLParam(r, "petID")
		petOwner, err := petsSvc.OwnerOf(r.Context(), petID)
		if err != nil {
			http.Error(w, "pet not found", http.StatusNotFound)
			return
		}
		if petOwner != ownerID {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		var req createTaskRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in, err := buildCreateInput(petID, ownerID, req)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		t, err := svc.Create(r.Context(), in)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, toTaskResponse(t))
	}
}

func buildCreateInput(petID, ownerID string, req createTaskRequest) (CreateInput, error) {
	priority, err := ParsePriority(req.Priority)
	if err != nil {
		return CreateInput{}, err
	}

	var pref *TimeOfDay
	if strings.TrimSpace(req.PreferredTime) != "" {
		p, err := ParseTimeOfDay(req.PreferredTime)
		if err != nil {
			return CreateInput{}, err
		}
		pref = &p
	}

	constraint, err := ParseConstraint(req.Constraint)
	if err != nil {
		return CreateInput{}, err
	}

	freq, err := ParseFrequency(req.Frequency)
	if err != nil {
		return CreateInput{}, err
	}

	var date *time.Time
	if strings.TrimSpace(req.Date) != "" {
		d, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return CreateInput{}, errors.New("date must be YYYY-MM-DD")
		}
		date = &d
	}

	return CreateInput{
		PetID:           petID,
		OwnerID:         ownerID,
		Title:           req.Title,
		DurationMinutes: req.DurationMinutes,
		Priority:        priority,
		PreferredTime:   pref,
		Constraint:      constraint,
		Frequency:       freq,
		Date:            date,
	}, nil
}

func listPetTasksHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, ok := middleware.GetOwnerID(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		petID := chi.URLParam(r, "petID")
		petOwner, err := petsSvc.OwnerOf(r.Context(), petID)
		if err != nil {
			http.Error(w, "pet not found", http.StatusNotFound)
			return
		}
		if petOwner != ownerID {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		items, err := svc.ListByPet(r.Context(), petID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeTaskList(w, items)
	}
}

func listOwnerTasksHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, ok := middleware.GetOwnerID(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListByOwner(r.Context(), ownerID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeTaskList(w, items)
	}
}

type updateTaskRequest struct {
	Title           *string `json:"title"`
	DurationMinutes *int    `json:"duration_minutes"`
	Priority        *string `json:"priority"`
	PreferredTime   *string `json:"preferred_time"` // null = limpiar
	Constraint      *string `json:"constraint"`     // null = limpiar
}

func updateTaskHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, ok := middleware.GetOwnerID(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		taskID := chi.URLParam(r, "taskID")
		current, err := svc.GetByID(r.Context(), taskID)
		if err != nil {
			http.Error(w, "task not found", http.StatusNotFound)
			return
		}
		if current.OwnerID != ownerID {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		// Para distinguir "campo ausente" de "campo en null" (= limpiar),
		// decodificamos primero a un map de presencia. Mismo truco que el
		// PATCH de pets con birth_date.
		var raw map[string]json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var req updateTaskRequest
		{
			b, _ := json.Marshal(raw)
			if err := json.Unmarshal(b, &req); err != nil {
				http.Error(w, "invalid json", http.StatusBadRequest)
				return
			}
		}

		in := UpdateInput{
			Title:           req.Title,
			DurationMinutes: req.DurationMinutes,
		}

		if req.Priority != nil {
			p, err := ParsePriority(*req.Priority)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			in.Priority = &p
		}

		if v, present := raw["preferred_time"]; present {
			if string(v) == "null" {
				in.ClearPreferred = true
			} else if req.PreferredTime != nil {
				p, err := ParseTimeOfDay(*req.PreferredTime)
				if err != nil {
					http.Error(w, err.Error(), http.StatusBadRequest)
					return
				}
				in.PreferredTime = &p
			}
		}

		if v, present := raw["constraint"]; present {
			if string(v) == "null" {
				in.ClearConstraint = true
			} else if req.Constraint != nil {
				c, err := ParseConstraint(*req.Constraint)
				if err != nil {
					http.Error(w, err.Error(), http.StatusBadRequest)
					return
				}
				in.Constraint = c
			}
		}

		updated, err := svc.Update(r.Context(), taskID, in)
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, toTaskResponse(updated))
	}
}

type completeTaskResponse struct {
	Updated        taskResponse  `json:"updated"`
	NextOccurrence *taskResponse `json:"next_occurrence,omitempty"`
}

func completeTaskHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, ok := middleware.GetOwnerID(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		taskID := chi.URLParam(r, "taskID")
		current, err := svc.GetByID(r.Context(), taskID)
		if err != nil {
			http.Error(w, "task not found", http.StatusNotFound)
			return
		}
		if current.OwnerID != ownerID {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		updated, next, err := svc.Complete(r.Context(), taskID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		resp := completeTaskResponse{Updated: toTaskResponse(updated)}
		if next != nil {
			nr := toTaskResponse(*next)
			resp.NextOccurrence = &nr
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

func writeTaskList(w http.ResponseWriter, items []Task) {
	sorted := SortForDisplay(items)
	out := make([]taskResponse, 0, len(sorted))
	for _, t := range sorted {
		out = append(out, toTaskResponse(t))
	}
	writeJSON(w, http.StatusOK, out)
}

func toTaskResponse(t Task) taskResponse {
	resp := taskResponse{
		ID:              t.ID,
		PetID:           t.PetID,
		OwnerID:         t.OwnerID,
		Title:           t.Title,
		DurationMinutes: t.DurationMinutes,
		Priority:        string(t.Priority),
		Completed:       t.Completed,
		Frequency:       string(t.Frequency),
		ParentTaskID:    t.ParentTaskID,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
	if t.PreferredTime != nil {
		resp.PreferredTime = t.PreferredTime.String()
	}
	if t.Constraint != nil {
		resp.Constraint = t.Constraint.String()
	}
	if t.Date != nil {
		resp.Date = t.Date.Format("2006-01-02")
	}
	return resp
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos;
// extraer un helper compartido recién vale la pena cuando se repita más.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
