package file

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/fileshare/service/internal/response"
)

// Handler holds HTTP handlers for file upload and retrieval endpoints.
type Handler struct {
	svc            *Service
	maxUploadBytes int64
}

// NewHandler creates a new file Handler.
func NewHandler(svc *Service, maxUploadBytes int64) *Handler {
	return &Handler{svc: svc, maxUploadBytes: maxUploadBytes}
}

type uploadData struct {
	ID string `json:"id" example:"e7eedc79-0707-4fe4-8734-526b7ef13a7b"`
}

type verifyRequest struct {
	ID       string `json:"id"       example:"e7eedc79-0707-4fe4-8734-526b7ef13a7b"`
	Password string `json:"password" example:"secret"`
}

type verifyData struct {
	StorageURL string `json:"storageUrl" example:"http://localhost:9000/files/abc/report.pdf"`
}

type signUploadRequest struct {
	FileName string `json:"fileName" example:"report.pdf"`
}

type signUploadData struct {
	UploadURL string `json:"uploadUrl"`
	Key       string `json:"key"`
}

type fileInfoData struct {
	FileName   string    `json:"fileName"`
	FileSize   int64     `json:"fileSize"`
	FileType   string    `json:"fileType"`
	Protected  bool      `json:"protected"`
	StorageURL string    `json:"storageUrl,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Upload godoc
//
//	@Summary		Upload a file
//	@Description	Accepts a multipart upload with an optional password. Returns the shareable file id; the storage location stays server-side until access is authorized.
//	@Tags			files
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			file		formData	file	true	"File payload"
//	@Param			password	formData	string	false	"Optional download password"
//	@Success		200	{object}	uploadData
//	@Failure		400	{object}	map[string]string
//	@Failure		500	{object}	map[string]string
//	@Router			/upload [post]
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	src, header, err := r.FormFile("file")
	if err != nil {
		response.Message(w, http.StatusBadRequest, "no file provided")
		return
	}
	defer src.Close()

	id, err := h.svc.SubmitUpload(r.Context(), UploadInput{
		FileName: header.Filename,
		FileSize: header.Size,
		FileType: header.Header.Get("Content-Type"),
		Password: r.FormValue("password"),
		Body:     src,
	})
	if errors.Is(err, ErrNoFile) {
		response.Message(w, http.StatusBadRequest, "no file provided")
		return
	}
	if err != nil {
		response.Message(w, http.StatusInternalServerError, "server error")
		return
	}

	response.JSON(w, http.StatusOK, uploadData{ID: id})
}

// Verify godoc
//
//	@Summary		Verify a file password
//	@Description	Checks the supplied password for a protected file and, on a match, releases the storage URL. The URL is never included in any failure response.
//	@Tags			files
//	@Accept			json
//	@Produce		json
//	@Param			request	body		verifyRequest	true	"File id and password"
//	@Success		200		{object}	verifyData
//	@Failure		400		{object}	map[string]string
//	@Failure		401		{object}	map[string]string
//	@Failure		404		{object}	map[string]string
//	@Router			/verify [post]
func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ID == "" || req.Password == "" {
		response.Error(w, http.StatusBadRequest, "file ID and password are required")
		return
	}

	grant, err := h.svc.ResolveDownload(r.Context(), req.ID, req.Password)
	switch {
	case err == nil:
	case h.svc.IsNotFound(err):
		response.Error(w, http.StatusNotFound, "file not found")
		return
	case errors.Is(err, ErrPasswordRequired):
		response.Error(w, http.StatusUnauthorized, "password required")
		return
	case errors.Is(err, ErrIncorrectPassword):
		response.Error(w, http.StatusUnauthorized, "incorrect password")
		return
	default:
		response.Error(w, http.StatusInternalServerError, "server error")
		return
	}

	if !grant.Protected {
		// Unprotected files are reached through GET /files/{id}; verification
		// does not apply to them.
		response.Error(w, http.StatusBadRequest, "this file is not password protected")
		return
	}

	response.JSON(w, http.StatusOK, verifyData{StorageURL: grant.StorageURL})
}

// GetInfo godoc
//
//	@Summary		Get file metadata
//	@Description	Returns the public metadata shown on the download page. The storage URL is included only for unprotected files.
//	@Tags			files
//	@Produce		json
//	@Param			id	path		string	true	"File id"
//	@Success		200	{object}	fileInfoData
//	@Failure		404	{object}	map[string]string
//	@Router			/files/{id} [get]
func (h *Handler) GetInfo(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	f, err := h.svc.GetFile(r.Context(), id)
	if err != nil {
		if h.svc.IsNotFound(err) {
			response.Error(w, http.StatusNotFound, "file not found")
			return
		}
		response.Error(w, http.StatusInternalServerError, "server error")
		return
	}

	info := fileInfoData{
		FileName:  f.FileName,
		FileSize:  f.FileSize,
		FileType:  f.FileType,
		Protected: f.Protected(),
		CreatedAt: f.CreatedAt,
	}
	if !f.Protected() {
		info.StorageURL = f.StorageURL
	}

	response.JSON(w, http.StatusOK, info)
}

// SignUpload godoc
//
//	@Summary		Sign a direct upload
//	@Description	Issues a short-lived presigned PUT URL so a client can upload the payload straight to object storage.
//	@Tags			files
//	@Accept			json
//	@Produce		json
//	@Param			request	body		signUploadRequest	true	"File name"
//	@Success		200		{object}	signUploadData
//	@Failure		400		{object}	map[string]string
//	@Failure		500		{object}	map[string]string
//	@Router			/sign-upload [post]
func (h *Handler) SignUpload(w http.ResponseWriter, r *http.Request) {
	var req signUploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.FileName == "" {
		response.Error(w, http.StatusBadRequest, "fileName is required")
		return
	}

	uploadURL, key, err := h.svc.SignUpload(r.Context(), req.FileName)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "failed to sign upload")
		return
	}

	response.JSON(w, http.StatusOK, signUploadData{UploadURL: uploadURL, Key: key})
}
