package services

import (
	"bytes"
	"context"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// MeditationAudioFolder is the Cloudinary folder for archived meditation clips.
const MeditationAudioFolder = "evolve/meditations"

// AudioArchive stores a synthesized WAV and returns its public URL.
type AudioArchive interface {
	ArchiveMeditationAudio(ctx context.Context, userID, meditationID uuid.UUID, wav []byte) (string, error)
}

type CloudinaryService struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryService(cloudName, apiKey, apiSecret string) (*CloudinaryService, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}

	return &CloudinaryService{
		cld: cld,
	}, nil
}

// ArchiveMeditationAudio uploads the clip as <folder>/<user>/<meditation>.
// Cloudinary files audio under the video resource type.
func (s *CloudinaryService) ArchiveMeditationAudio(ctx context.Context, userID, meditationID uuid.UUID, wav []byte) (string, error) {
	uploadResult, err := s.cld.Upload.Upload(ctx, bytes.NewReader(wav), uploader.UploadParams{
		Folder:       MeditationAudioFolder + "/" + userID.String(),
		PublicID:     meditationID.String(),
		ResourceType: "video",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to Cloudinary: %w", err)
	}
	if uploadResult.Error.Message != "" {
		return "", fmt.Errorf("cloudinary rejected upload: %s", uploadResult.Error.Message)
	}

	return uploadResult.SecureURL, nil
}
