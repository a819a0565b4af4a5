package ai

import "fmt"

// Prompt templates for the contract tasks. The structure of these prompts is
// load-bearing: the frontend renders the returned markdown sections directly.

// chatSystemPrompt anchors the multi-turn assistant to the contract domain.
const chatSystemPrompt = `你是一位资深的合同法律顾问。用户会向你咨询合同相关的问题，` +
	`或提供合同文本请你解读。请用中文回答，给出专业、准确、可操作的建议；` +
	`涉及重大法律风险时提醒用户咨询执业律师。`

func analysisPrompt(contractContent string) string {
	return fmt.Sprintf(`作为专业的法律AI助手，请分析以下合同内容，并提供详细的分析报告：

合同内容：
%s

请按以下格式提供分析：

## 📋 合同基本信息
- 合同类型：
- 合同主题：
- 涉及方数量：

## 🔍 关键条款分析
1. **核心条款**：
2. **权利义务**：
3. **付款条款**：
4. **时间安排**：

## ⚠️ 风险点识别
1. **高风险条款**：
2. **模糊表述**：
3. **缺失条款**：

## 💰 财务条款
- 合同金额：
- 付款方式：
- 违约金条款：

## 📅 重要日期
- 合同期限：
- 关键节点：

## 💡 建议和改进
1. **条款优化建议**：
2. **风险防范措施**：
3. **合规性建议**：

## 📊 合同评分
- 完整性：/10
- 清晰度：/10
- 风险控制：/10
- 总体评分：/10

请用中文回复，确保分析专业、准确、实用。`, contractContent)
}

func generationPrompt(contractType, requirements string) string {
	return fmt.Sprintf(`作为专业的法律AI助手，请根据以下要求生成一份完整的%[1]s：

需求描述：
%[2]s

请生成一份专业、完整的合同，包含以下结构：

# %[1]s

## 合同编号
[合同编号：待填写]

## 甲方（委托方/买方）
- 公司名称：[甲方公司名称]
- 法定代表人：[法定代表人姓名]
- 地址：[详细地址]
- 联系电话：[联系电话]
- 邮箱：[邮箱地址]

## 乙方（服务方/卖方）
- 公司名称：[乙方公司名称]
- 法定代表人：[法定代表人姓名]
- 地址：[详细地址]
- 联系电话：[联系电话]
- 邮箱：[邮箱地址]

## 第一条 合同目的和依据
[合同签署的目的和法律依据]

## 第二条 服务内容/商品描述
[详细的服务内容或商品描述]

## 第三条 合同金额和付款方式
[具体金额和付款安排]

## 第四条 履行期限和地点
[时间安排和履行地点]

## 第五条 双方权利和义务
### 甲方权利和义务：
### 乙方权利和义务：

## 第六条 质量标准和验收
[质量要求和验收标准]

## 第七条 违约责任
[违约情形和责任承担]

## 第八条 知识产权
[知识产权归属和保护]

## 第九条 保密条款
[保密义务和范围]

## 第十条 争议解决
[争议解决方式]

## 第十一条 合同变更和解除
[变更和解除条件]

## 第十二条 其他约定
[其他特殊约定]

## 第十三条 合同生效
本合同自双方签字盖章之日起生效，有效期至[结束日期]。

## 签署
甲方（盖章）：________________    乙方（盖章）：________________
法定代表人：__________________    法定代表人：__________________
签署日期：____________________    签署日期：____________________

请确保合同内容专业、完整、符合法律规范，并根据具体需求进行个性化调整。`, contractType, requirements)
}

func streamGenerationPrompt(contractType, requirements string) string {
	return fmt.Sprintf(`根据以下要求生成一份%s合同模板：

要求：
%s

请生成一份完整的合同模板，逐步输出内容。`, contractType, requirements)
}

const defaultTestPrompt = "请用一句话介绍人工智能在合同管理中的应用。"

// performancePrompts are issued sequentially by PerformanceTest.
var performancePrompts = []string{
	"请简述合同的基本要素。",
	"什么是违约责任？",
	"如何确保合同的法律效力？",
}
