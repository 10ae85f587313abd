// Package main provides localization for the framegrab CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Root command
		"Extract uniformly spaced frames from a video into an animated preview": "動画から等間隔のフレームを抽出してアニメーションプレビューを作成",

		// Extract command
		"Extract frames from a video URL or MP4 file": "動画URLまたはMP4ファイルからフレームを抽出",

		// Version command
		"Show version information": "バージョン情報を表示",
		"framegrab version %s":     "framegrab バージョン %s",

		// Flags
		"Output GIF file path":                                   "出力GIFファイルパス",
		"Configuration YAML file":                                "設定YAMLファイル",
		"Capture window start in seconds":                        "キャプチャ範囲の開始秒",
		"Capture window end in seconds (default: source duration)": "キャプチャ範囲の終了秒（デフォルト: 動画の長さ）",
		"Frames per second of source time":                       "ソース時間あたりのフレーム数",
		"Quality tier (low, medium, high)":                       "品質ティア（low, medium, high）",
		"Output frame height (overrides quality tier)":           "出力フレームの高さ（品質ティアを上書き）",
		"Animation loop count (0 = forever)":                     "アニメーションのループ回数（0 = 無限）",
		"Total wall-clock budget in milliseconds":                "全体の実時間予算（ミリ秒）",
		"Per-instant readiness wait cap in milliseconds":         "時点ごとの準備待ち上限（ミリ秒）",
		"Output execution summary to file (Markdown format)":     "実行サマリーをファイルに出力（Markdown形式）",
		"Enable debug output":                                    "デバッグ出力を有効化",
		"Directory for debug output":                             "デバッグ出力のディレクトリ",
		"Path to Chrome executable":                              "Chrome実行ファイルのパス",
		"Run browser in non-headless mode":                       "ブラウザを非ヘッドレスモードで実行",
		"Path to ffmpeg executable":                              "ffmpeg実行ファイルのパス",
		"Log level (debug, info, warn, error)":                   "ログレベル（debug, info, warn, error）",
		"Suppress all log output":                                "全てのログ出力を抑制",

		// Runtime messages
		"Opening %s":                    "%s を開いています",
		"Interrupted, shutting down...": "中断されました。シャットダウンしています...",
		"Summary saved to %s":           "サマリーを %s に保存しました",
		"Failed to write summary: %s":   "サマリーの書き込みに失敗しました: %s",

		// Error messages
		"input argument is required": "入力引数が必要です",

		// Summary content
		"Extraction Summary":     "抽出サマリー",
		"Generated":              "生成日時",
		"Source":                 "ソース",
		"Path":                   "パス",
		"Duration":               "長さ",
		"Native Size":            "元のサイズ",
		"Capture Window":         "キャプチャ範囲",
		"Window":                 "範囲",
		"Frame Rate":             "フレームレート",
		"Capture":                "キャプチャ",
		"Frames":                 "フレーム数",
		"Actual Frame Rate":      "実効フレームレート",
		"Interval":               "間隔",
		"Processing Time":        "処理時間",
		"Budget Consumed":        "消費した時間予算",
		"Animation":              "アニメーション",
		"Size":                   "サイズ",
		"Playback Duration":      "再生時間",
		"File Size":              "ファイルサイズ",
		"Loop":                   "ループ",
		"forever":                "無限",
		"Output":                 "出力先",
		"Generated by framegrab": "生成: framegrab",
	})
}
