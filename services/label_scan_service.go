package services

import (
	"context"
	"encoding/base64"
	"errors"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
)

// LabelScanService OCRs packaging photos so their ingredient text can go
// through the normal analysis pipeline.
type LabelScanService struct {
	client *rekognition.Client
}

func NewLabelScanService() (*LabelScanService, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(os.Getenv("AWS_REGION")))
	if err != nil {
		return nil, err
	}
	return &LabelScanService{client: rekognition.NewFromConfig(cfg)}, nil
}

// DecodeImageDataURI strips a "data:image/...;base64," prefix and decodes
// the payload.
func DecodeImageDataURI(dataURI string) ([]byte, error) {
	if !strings.HasPrefix(dataURI, "data:image") {
		return nil, errors.New("invalid data URI")
	}
	idx := strings.Index(dataURI, ",")
	if idx < 0 {
		return nil, errors.New("invalid data URI")
	}
	return base64.StdEncoding.DecodeString(dataURI[idx+1:])
}

// ExtractLabelText detects printed text in a label photo and reassembles the
// detected lines into plain ingredients text for the normalizer.
func (s *LabelScanService) ExtractLabelText(imageBytes []byte) (string, error) {
	out, err := s.client.DetectText(context.TODO(), &rekognition.DetectTextInput{
		Image: &types.Image{Bytes: imageBytes},
	})
	if err != nil {
		return "", err
	}

	var lines []string
	for _, det := range out.TextDetections {
		if det.Type != types.TextTypesLine || det.DetectedText == nil {
			continue
		}
		lines = append(lines, *det.DetectedText)
	}
	return strings.Join(lines, " "), nil
}
