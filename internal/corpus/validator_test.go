// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package corpus

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateUpload_AllowedExtensions(t *testing.T) {
	for _, name := range []string{
		"report.txt", "report.pdf", "page.html", "page.htm", "notes.docx",
		"REPORT.TXT", "Mixed.PdF",
	} {
		if err := ValidateUpload(name, 1024); err != nil {
			t.Errorf("%s: expected accept, got %v", name, err)
		}
	}
}

func TestValidateUpload_RejectedExtensions(t *testing.T) {
	for _, name := range []string{
		"archive.zip", "binary.exe", "image.png", "noextension", "script.sh",
	} {
		err := ValidateUpload(name, 1024)
		if err == nil {
			t.Errorf("%s: expected rejection", name)
			continue
		}
		if !errors.Is(err, ErrInvalidUpload) {
			t.Errorf("%s: expected ErrInvalidUpload, got %v", name, err)
		}
		// The message enumerates the accepted extensions.
		for _, ext := range AllowedExtensions {
			if !strings.Contains(err.Error(), ext) {
				t.Errorf("%s: message %q missing %s", name, err.Error(), ext)
			}
		}
	}
}

func TestValidateUpload_SizeCeiling(t *testing.T) {
	if err := ValidateUpload("big.pdf", MaxUploadSize); err != nil {
		t.Errorf("At the ceiling should pass, got %v", err)
	}

	err := ValidateUpload("big.pdf", MaxUploadSize+1)
	if !errors.Is(err, ErrInvalidUpload) {
		t.Fatalf("Over the ceiling should fail, got %v", err)
	}
	if !strings.Contains(err.Error(), "10 MiB") {
		t.Errorf("Message should name the limit, got %q", err.Error())
	}
}

func TestValidateUpload_ExtensionCheckedBeforeSize(t *testing.T) {
	err := ValidateUpload("huge.zip", MaxUploadSize*10)
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("Expected *ValidationError, got %T", err)
	}
	if !strings.Contains(vErr.Reason, "unsupported file type") {
		t.Errorf("Expected the type rejection first, got %q", vErr.Reason)
	}
}
