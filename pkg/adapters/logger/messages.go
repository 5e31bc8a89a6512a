package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Orchestration level messages (info)
		"Resolved format: %s container, %s, %s":            "フォーマット解決: %s コンテナ, %s, %s",
		"Adjusted frame dimensions from %dx%d to %dx%d":    "フレーム寸法を %dx%d から %dx%d に調整しました",
		"Reconciled %d frames, duration %.3fs":             "%d フレームに調整しました (長さ %.3f 秒)",
		"Output saved to %s":                               "出力を %s に保存しました",

		// Reconcile stage
		"Extended %d frames to %d via pingpong":            "ピンポン再生で %d フレームを %d フレームに拡張しました",
		"Trimmed video to %d frames to match audio":        "音声に合わせて動画を %d フレームに切り詰めました",

		// Encode stage
		"State %s: %d frames to %s":                        "状態 %s: %d フレームを %s へ",
		"State %s: audio codec %s":                         "状態 %s: 音声コーデック %s",
		"State %s: %s":                                     "状態 %s: %s",
		"State %s -> %s: %s":                               "状態 %s -> %s: %s",

		// Fallback
		"Attempt %d (%s) skipped: backend unavailable":     "試行 %d (%s) をスキップ: バックエンドが利用できません",
		"Attempt %d (%s) failed: %s":                       "試行 %d (%s) が失敗しました: %s",
		"Encoded with fallback configuration %d (%s) after %d failed attempts": "%[3]d 回の失敗後、フォールバック構成 %[1]d (%[2]s) でエンコードしました",

		// Warnings
		"Metadata write failed: %s":                        "メタデータの書き込みに失敗しました: %s",
		"Could not remove partial output %s: %s":           "中間出力 %s を削除できませんでした: %s",
	})
}
