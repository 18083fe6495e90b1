package utils

import (
	"math/rand"
	"time"

	"github.com/vraj2305/cancer_scanner/models"
	"gorm.io/gorm"
)

const scanReferenceLength = 8
const letterBytes = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateUniqueScanReference mints a human-readable reference code for a
// scan result, retrying until it does not collide.
func GenerateUniqueScanReference(tx *gorm.DB) (string, error) {
	seededRand := rand.New(rand.NewSource(time.Now().UnixNano()))

	for {
		b := make([]byte, scanReferenceLength)
		for i := range b {
			b[i] = letterBytes[seededRand.Intn(len(letterBytes))]
		}
		code := "SCAN-" + string(b)

		var scan models.ScanResult
		err := tx.Where("reference = ?", code).First(&scan).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return code, nil
			}
			return "", err
		}
	}
}
