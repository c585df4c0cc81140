package main

import (
	"fmt"

	"github.com/RecoveryAshes/YCHarvest/internal/models"
)

// validateFlags 命令行参数的早期校验
// 完整校验由配置层的HarvestConfig.Validate完成,
// 这里只拦截明显的输入错误,给出更友好的提示
func validateFlags() error {
	if listingURL != "" {
		if err := models.ValidateURL(listingURL); err != nil {
			return fmt.Errorf("列表页URL无效: %w", err)
		}
	}

	if mode != "" && mode != string(models.ModeBrowser) && mode != string(models.ModeStatic) {
		return fmt.Errorf("无效的补全模式: %s (可选: browser|static)", mode)
	}

	if chunkSize < 0 || chunkSize > 50 {
		return fmt.Errorf("分块大小必须在1-50之间")
	}
	if stabilityRounds < 0 || stabilityRounds > 20 {
		return fmt.Errorf("稳定轮数必须在1-20之间")
	}
	if maxScroll < 0 {
		return fmt.Errorf("最大滚动轮数不能为负数")
	}

	return nil
}
