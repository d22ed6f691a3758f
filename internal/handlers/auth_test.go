package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Adetops/edu-progress-tracker/internal/models"
)

func TestCanAccessStudent(t *testing.T) {
	linked := "s1"
	tests := []struct {
		name      string
		user      *models.User
		studentID string
		want      bool
	}{
		{
			name:      "teacher sees everyone",
			user:      &models.User{Role: models.RoleTeacher},
			studentID: "s1",
			want:      true,
		},
		{
			name:      "admin sees everyone",
			user:      &models.User{Role: models.RoleAdmin},
			studentID: "s1",
			want:      true,
		},
		{
			name:      "student sees own record",
			user:      &models.User{Role: models.RoleStudent, StudentID: &linked},
			studentID: "s1",
			want:      true,
		},
		{
			name:      "student denied other record",
			user:      &models.User{Role: models.RoleStudent, StudentID: &linked},
			studentID: "s2",
			want:      false,
		},
		{
			name:      "parent sees linked student",
			user:      &models.User{Role: models.RoleParent, StudentID: &linked},
			studentID: "s1",
			want:      true,
		},
		{
			name:      "unlinked account denied",
			user:      &models.User{Role: models.RoleParent},
			studentID: "s1",
			want:      false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanAccessStudent(tt.user, tt.studentID); got != tt.want {
				t.Errorf("CanAccessStudent() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	gin.SetMode(gin.TestMode)

	call := func(role interface{}, required ...models.UserRole) int {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		if role != nil {
			c.Set("user_role", role)
		}

		am := &AuthMiddleware{}
		am.RequireRole(required...)(c)

		if c.IsAborted() {
			return w.Code
		}
		return http.StatusOK
	}

	t.Run("matching role passes", func(t *testing.T) {
		if code := call(models.RoleTeacher, models.RoleTeacher); code != http.StatusOK {
			t.Errorf("expected 200, got %d", code)
		}
	})

	t.Run("admin passes any requirement", func(t *testing.T) {
		if code := call(models.RoleAdmin, models.RoleTeacher); code != http.StatusOK {
			t.Errorf("expected 200, got %d", code)
		}
	})

	t.Run("other role is forbidden", func(t *testing.T) {
		if code := call(models.RoleStudent, models.RoleTeacher); code != http.StatusForbidden {
			t.Errorf("expected 403, got %d", code)
		}
	})

	t.Run("missing role is forbidden", func(t *testing.T) {
		if code := call(nil, models.RoleTeacher); code != http.StatusForbidden {
			t.Errorf("expected 403, got %d", code)
		}
	})
}
