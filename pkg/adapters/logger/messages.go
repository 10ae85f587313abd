package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Orchestration level messages (info)
		"Starting extraction":                "抽出を開始します",
		"Planned %d frames of %dx%d":         "%d フレームを %dx%d で計画しました",
		"Extracting %d frames":               "%d フレームを抽出中",
		"Extraction completed in %d ms":      "抽出が %d ms で完了しました",
		"Assembling %d frames":               "%d フレームを組み立て中",
		"Animation assembled: %d bytes":      "アニメーション組み立て完了: %d バイト",
		"Output saved to %s":                 "出力を %s に保存しました",
		"Interrupted, shutting down...":      "中断されました。シャットダウン中...",

		// Capture stage
		"Run %s: %d instants at %dx%d":            "実行 %s: %d 時点を %dx%d で処理",
		"Run %s: captured %d frames in %v":        "実行 %s: %d フレームを %v でキャプチャしました",
		"Run %s: budget exhausted before instant %d": "実行 %s: 時点 %d の前に時間予算を使い切りました",
		"Captured frame %d of %d":                 "フレーム %d/%d をキャプチャしました",

		// Probe component
		"Target %.3fs covered after %v":                "対象 %.3f 秒が %v 後にバッファ済みになりました",
		"Ready state stuck at %s for %v":               "readyState が %s のまま %v 経過しました",
		"Buffered edge stuck at %.3fs short of %.3fs":  "バッファ端が %.3f 秒で停止し %.3f 秒に届きません",

		// Sampler component
		"Sampled %dx%d frame": "%dx%d フレームをサンプリングしました",

		// Warnings
		"Failed to restore position %.3fs: %s": "位置 %.3f 秒の復元に失敗しました: %s",
		"Failed to resume playback: %s":        "再生の再開に失敗しました: %s",

		// Errors
		"Failed to plan capture: %s":      "キャプチャ計画に失敗しました: %s",
		"Failed to extract frames: %s":    "フレーム抽出に失敗しました: %s",
		"Failed to assemble animation: %s": "アニメーション組み立てに失敗しました: %s",
		"Failed to write output: %s":      "出力の書き込みに失敗しました: %s",
	})
}
