package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"denticare-server/internal/delivery/dto"
	"denticare-server/internal/service"
	"denticare-server/internal/usecase"
	"denticare-server/pkg/response"
	"denticare-server/pkg/validator"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockBookingUsecase struct {
	mock.Mock
}

func (m *mockBookingUsecase) ValidateGuestBooking(ctx context.Context, req *dto.ValidateBookingRequest) (*dto.BookingResponse, error) {
	args := m.Called(ctx, req)
	if resp := args.Get(0); resp != nil {
		return resp.(*dto.BookingResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBookingUsecase) BookGuest(ctx context.Context, req *dto.GuestBookingRequest) (*dto.BookingResponse, error) {
	args := m.Called(ctx, req)
	if resp := args.Get(0); resp != nil {
		return resp.(*dto.BookingResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBookingUsecase) BookFollowUp(ctx context.Context, actor usecase.Actor, req *dto.FollowUpBookingRequest) (*dto.AppointmentResponse, error) {
	args := m.Called(ctx, actor, req)
	if resp := args.Get(0); resp != nil {
		return resp.(*dto.AppointmentResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func guestBookingBody(t *testing.T) []byte {
	t.Helper()
	body, err := json.Marshal(dto.GuestBookingRequest{
		BookingFields: dto.BookingFields{
			FullName:        "Nguyen Van A",
			Email:           "nguyen.van.a@example.com",
			Phone:           "0912345678",
			DentistID:       uuid.New(),
			AppointmentDate: "2027-03-02",
			AppointmentTime: "09:00:00",
			Content:         "Tooth pain, lower left",
		},
		ChallengeID:    uuid.New().String(),
		ChallengeInput: "k7mp3q",
	})
	assert.NoError(t, err)
	return body
}

func postGuestBooking(h *BookingHandler, body []byte) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", bytes.NewReader(body))
	h.CreateGuestBooking(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var resp response.Response
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestCreateGuestBooking_Success(t *testing.T) {
	uc := new(mockBookingUsecase)
	uc.On("BookGuest", mock.Anything, mock.Anything).
		Return(&dto.BookingResponse{ExistingPatient: false}, nil)
	h := NewBookingHandler(uc, nil, validator.NewValidator())

	rec := postGuestBooking(h, guestBookingBody(t))

	assert.Equal(t, http.StatusCreated, rec.Code)
	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)
	uc.AssertExpectations(t)
}

func TestCreateGuestBooking_SlotConflict(t *testing.T) {
	uc := new(mockBookingUsecase)
	uc.On("BookGuest", mock.Anything, mock.Anything).
		Return(nil, usecase.ErrSlotConflict)
	h := NewBookingHandler(uc, nil, validator.NewValidator())

	rec := postGuestBooking(h, guestBookingBody(t))

	assert.Equal(t, http.StatusConflict, rec.Code)
	resp := decodeResponse(t, rec)
	assert.False(t, resp.Success)
	assert.Equal(t, "SLOT_CONFLICT", resp.Code)
}

func TestCreateGuestBooking_InvalidCaptcha(t *testing.T) {
	uc := new(mockBookingUsecase)
	uc.On("BookGuest", mock.Anything, mock.Anything).
		Return(nil, service.ErrInvalidCaptcha)
	h := NewBookingHandler(uc, nil, validator.NewValidator())

	rec := postGuestBooking(h, guestBookingBody(t))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_CAPTCHA", decodeResponse(t, rec).Code)
}

func TestCreateGuestBooking_SlotNotBookable(t *testing.T) {
	uc := new(mockBookingUsecase)
	uc.On("BookGuest", mock.Anything, mock.Anything).
		Return(nil, usecase.ErrSlotNotBookable)
	h := NewBookingHandler(uc, nil, validator.NewValidator())

	rec := postGuestBooking(h, guestBookingBody(t))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "SLOT_NOT_BOOKABLE", decodeResponse(t, rec).Code)
}

func TestCreateGuestBooking_ValidationFailure(t *testing.T) {
	uc := new(mockBookingUsecase)
	h := NewBookingHandler(uc, nil, validator.NewValidator())

	body, err := json.Marshal(dto.GuestBookingRequest{
		BookingFields: dto.BookingFields{
			FullName: "A",
			Email:    "not-an-email",
			Phone:    "abc",
		},
	})
	assert.NoError(t, err)

	rec := postGuestBooking(h, body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", decodeResponse(t, rec).Code)
	uc.AssertNotCalled(t, "BookGuest", mock.Anything, mock.Anything)
}
