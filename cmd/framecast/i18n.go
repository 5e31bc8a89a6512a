// Package main provides localization for the framecast CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Root command
		"Synthesize encoded videos from image frame sequences.": "画像フレーム列からエンコード済み動画を合成します。",

		// Synth command
		"Synthesize a video from image frames and optional audio.": "画像フレームと任意の音声から動画を合成",
		"Loaded %d frames (%dx%d)":                                 "%d フレームを読み込みました (%dx%d)",

		// Demo command
		"Synthesize a generated test pattern video.":   "テストパターン動画を生成して合成",
		"Generated %d test pattern frames (%dx%d)":     "テストパターン %d フレームを生成しました (%dx%d)",

		// Version command
		"Show version information.": "バージョン情報を表示",
		"framecast version %s":      "framecast バージョン %s",

		// Runtime messages
		"Interrupted, shutting down...":             "中断されました。シャットダウン中...",
		"Primary format unavailable, used %s/%s":    "優先フォーマットが利用できないため %s/%s を使用しました",
		"Done: %s (%d frames, %.3fs, %d bytes)":     "完了: %s (%d フレーム, %.3f 秒, %d バイト)",
	})
}
