package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"slimpdf/internal/common"
)

var (
	ErrEmptyInstruction = errors.New("edit instruction must not be empty")
	ErrNotEditable      = errors.New("only image artifacts can be edited")
)

// ApplyEdit sends an image artifact plus instruction to the remote
// editor and returns the replacement artifact. On failure the original
// artifact is left untouched and the caller keeps it.
func (p *Pipeline) ApplyEdit(ctx context.Context, artifact Artifact, instruction string) (Artifact, error) {
	if !artifact.Editable {
		return Artifact{}, ErrNotEditable
	}
	if strings.TrimSpace(instruction) == "" {
		return Artifact{}, ErrEmptyInstruction
	}

	mimeType, data, err := common.DecodeDataURL(artifact.Content)
	if err != nil {
		return Artifact{}, err
	}

	edited, err := p.assistant.EditImage(ctx, mimeType, data, instruction)
	if err != nil {
		return Artifact{}, err
	}

	name := common.EditedName(artifact.Name)
	runDir := filepath.Join(p.workingDir, common.GenerateUUID())
	filePath, err := writeArtifactFile(runDir, name, edited)
	if err != nil {
		return Artifact{}, fmt.Errorf("failed to store edited image: %w", err)
	}

	content := common.EncodeDataURL(mimeType, edited)
	p.logger.Info("Edit applied", "artifact", artifact.Name, "edited_size", len(edited))

	return Artifact{
		ID:             common.GenerateUUID(),
		Name:           name,
		Content:        content,
		Preview:        content,
		OriginalSize:   artifact.OriginalSize,
		CompressedSize: int64(len(edited)),
		FilePath:       filePath,
		Editable:       true,
	}, nil
}
