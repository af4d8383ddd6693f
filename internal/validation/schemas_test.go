package validation

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/hitoshi/postpilot/internal/model"
)

// --- ヘルパー ---

func strPtr(s string) *string {
	return &s
}

func urlsPtr(urls ...string) *[]string {
	return &urls
}

// assertValidationError は*model.APIErrorのメッセージを検証するヘルパー。
func assertValidationError(t *testing.T, err error, wantMessage string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected validation error %q, got nil", wantMessage)
	}
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *model.APIError, got %T", err)
	}
	if apiErr.Code != model.ErrCodeValidation {
		t.Errorf("code = %q, want %q", apiErr.Code, model.ErrCodeValidation)
	}
	if apiErr.Message != wantMessage {
		t.Errorf("message = %q, want %q", apiErr.Message, wantMessage)
	}
}

// --- ユーザー作成スキーマ ---

func TestCreateUserInput_ValidEmail(t *testing.T) {
	in := &CreateUserInput{Email: strPtr("a@b.com")}
	if err := in.Validate(); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

func TestCreateUserInput_MissingEmail(t *testing.T) {
	in := &CreateUserInput{}
	assertValidationError(t, in.Validate(), "Email is required")
}

func TestCreateUserInput_InvalidEmail(t *testing.T) {
	for _, email := range []string{"", "not-an-email", "a@", "@b.com", "a b@c.com"} {
		in := &CreateUserInput{Email: strPtr(email)}
		assertValidationError(t, in.Validate(), "Invalid email format")
	}
}

// --- ユーザー更新スキーマ ---

func TestUpdateUserInput_EmailOptional(t *testing.T) {
	in := &UpdateUserInput{}
	if err := in.Validate(); err != nil {
		t.Errorf("expected no error for empty update, got %v", err)
	}
}

func TestUpdateUserInput_InvalidEmailWhenPresent(t *testing.T) {
	in := &UpdateUserInput{Email: strPtr("invalid")}
	assertValidationError(t, in.Validate(), "Invalid email format")
}

// --- 投稿作成スキーマ ---

func validCreatePostInput() *CreatePostInput {
	return &CreatePostInput{
		Content:  strPtr("hello"),
		Platform: strPtr("twitter"),
	}
}

func TestCreatePostInput_MinimalValid(t *testing.T) {
	in := validCreatePostInput()
	if err := in.Validate(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if in.NormalizedStatus() != model.StatusDraft {
		t.Errorf("status = %q, want %q", in.NormalizedStatus(), model.StatusDraft)
	}
	if urls := in.NormalizedMediaURLs(); len(urls) != 0 {
		t.Errorf("mediaUrls length = %d, want 0", len(urls))
	}
	if in.ScheduledAt() != nil {
		t.Errorf("scheduledAt = %v, want nil", in.ScheduledAt())
	}
}

func TestCreatePostInput_MissingContent(t *testing.T) {
	in := &CreatePostInput{Platform: strPtr("twitter")}
	assertValidationError(t, in.Validate(), "Content is required")
}

func TestCreatePostInput_EmptyContent(t *testing.T) {
	in := validCreatePostInput()
	in.Content = strPtr("")
	assertValidationError(t, in.Validate(), "Content cannot be empty")
}

func TestCreatePostInput_ContentLengthBoundary(t *testing.T) {
	// 280文字は受理される
	in := validCreatePostInput()
	in.Content = strPtr(strings.Repeat("a", 280))
	if err := in.Validate(); err != nil {
		t.Errorf("280 chars: expected no error, got %v", err)
	}

	// 281文字は拒否される
	in = validCreatePostInput()
	in.Content = strPtr(strings.Repeat("a", 281))
	assertValidationError(t, in.Validate(), "Content too long")

	// マルチバイト文字もバイト数ではなく文字数で数える
	in = validCreatePostInput()
	in.Content = strPtr(strings.Repeat("あ", 280))
	if err := in.Validate(); err != nil {
		t.Errorf("280 multibyte chars: expected no error, got %v", err)
	}

	in = validCreatePostInput()
	in.Content = strPtr(strings.Repeat("あ", 281))
	assertValidationError(t, in.Validate(), "Content too long")
}

func TestCreatePostInput_MissingPlatform(t *testing.T) {
	in := &CreatePostInput{Content: strPtr("hello")}
	assertValidationError(t, in.Validate(), "Platform is required")
}

func TestCreatePostInput_InvalidPlatform(t *testing.T) {
	in := validCreatePostInput()
	in.Platform = strPtr("myspace")
	assertValidationError(t, in.Validate(), "Invalid platform")
}

func TestCreatePostInput_InvalidStatus(t *testing.T) {
	in := validCreatePostInput()
	in.Status = strPtr("archived")
	assertValidationError(t, in.Validate(), "Invalid status")
}

func TestCreatePostInput_ValidStatuses(t *testing.T) {
	for _, status := range []string{"draft", "published", "scheduled"} {
		in := validCreatePostInput()
		in.Status = strPtr(status)
		if err := in.Validate(); err != nil {
			t.Errorf("status %q: expected no error, got %v", status, err)
		}
		if got := in.NormalizedStatus(); got != model.PostStatus(status) {
			t.Errorf("status = %q, want %q", got, status)
		}
	}
}

func TestCreatePostInput_InvalidMediaURL(t *testing.T) {
	in := validCreatePostInput()
	in.MediaURLs = urlsPtr("https://example.com/a.png", "not a url")
	assertValidationError(t, in.Validate(), "Invalid URL")
}

func TestCreatePostInput_ValidMediaURLs(t *testing.T) {
	in := validCreatePostInput()
	in.MediaURLs = urlsPtr("https://example.com/a.png", "http://cdn.example.com/b.jpg")
	if err := in.Validate(); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if got := in.NormalizedMediaURLs(); len(got) != 2 {
		t.Errorf("mediaUrls length = %d, want 2", len(got))
	}
}

func TestCreatePostInput_ScheduledForParsed(t *testing.T) {
	in := validCreatePostInput()
	in.ScheduledFor = strPtr("2026-09-01T12:30:00Z")
	if err := in.Validate(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	want := time.Date(2026, 9, 1, 12, 30, 0, 0, time.UTC)
	got := in.ScheduledAt()
	if got == nil || !got.Equal(want) {
		t.Errorf("scheduledAt = %v, want %v", got, want)
	}
}

func TestCreatePostInput_InvalidScheduledFor(t *testing.T) {
	in := validCreatePostInput()
	in.ScheduledFor = strPtr("tomorrow at noon")
	assertValidationError(t, in.Validate(), "Invalid datetime format")
}

// 検証は宣言順にfail-fastで行われ、最初の違反のみが報告される
func TestCreatePostInput_ReportsFirstViolationOnly(t *testing.T) {
	in := &CreatePostInput{
		Content:  strPtr(""),
		Platform: strPtr("myspace"),
		Status:   strPtr("archived"),
	}
	assertValidationError(t, in.Validate(), "Content cannot be empty")
}

// --- 投稿更新スキーマ ---

func TestUpdatePostInput_AllFieldsOptional(t *testing.T) {
	in := &UpdatePostInput{}
	if err := in.Validate(); err != nil {
		t.Errorf("expected no error for empty update, got %v", err)
	}
}

func TestUpdatePostInput_FieldRulesApplyWhenPresent(t *testing.T) {
	in := &UpdatePostInput{Content: strPtr(strings.Repeat("x", 281))}
	assertValidationError(t, in.Validate(), "Content too long")

	in = &UpdatePostInput{Platform: strPtr("tiktok")}
	assertValidationError(t, in.Validate(), "Invalid platform")

	in = &UpdatePostInput{ScheduledFor: strPtr("not-a-date")}
	assertValidationError(t, in.Validate(), "Invalid datetime format")
}

func TestUpdatePostInput_TypedAccessors(t *testing.T) {
	in := &UpdatePostInput{
		Platform:     strPtr("facebook"),
		Status:       strPtr("published"),
		ScheduledFor: strPtr("2026-09-02T09:00:00Z"),
	}
	if err := in.Validate(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if p := in.PlatformValue(); p == nil || *p != model.PlatformFacebook {
		t.Errorf("platform = %v, want %q", p, model.PlatformFacebook)
	}
	if s := in.StatusValue(); s == nil || *s != model.StatusPublished {
		t.Errorf("status = %v, want %q", s, model.StatusPublished)
	}
	if in.ScheduledAt() == nil {
		t.Error("expected scheduledAt to be parsed")
	}
}

func TestUpdatePostInput_NilAccessorsWhenAbsent(t *testing.T) {
	in := &UpdatePostInput{}
	if err := in.Validate(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if in.PlatformValue() != nil {
		t.Error("expected nil platform")
	}
	if in.StatusValue() != nil {
		t.Error("expected nil status")
	}
	if in.ScheduledAt() != nil {
		t.Error("expected nil scheduledAt")
	}
}
