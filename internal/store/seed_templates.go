package store

// Seed template bodies for the in-memory backend. Placeholders in [方括号]
// are filled when a contract is created from the template.

const devTemplateContent = `# 软件开发服务合同

## 甲方（委托方）
公司名称：[甲方公司名称]
地址：[甲方地址]
联系人：[联系人姓名]
电话：[联系电话]

## 乙方（开发方）
公司名称：[乙方公司名称]
地址：[乙方地址]
联系人：[联系人姓名]
电话：[联系电话]

## 项目概述
项目名称：[项目名称]
开发周期：[开发周期]
项目预算：[项目预算]

## 服务内容
1. 需求分析和系统设计
2. 软件开发和编码
3. 系统测试和调试
4. 部署和上线支持
5. 维护和技术支持

## 交付成果
1. 完整的软件系统
2. 源代码和技术文档
3. 用户操作手册
4. 系统部署文档

## 付款方式
1. 签约时支付30%
2. 开发完成支付60%
3. 验收通过支付10%

## 知识产权
[知识产权条款]

## 保密条款
[保密条款内容]

## 违约责任
[违约责任条款]

## 争议解决
[争议解决条款]`

const ndaTemplateContent = `# 保密协议

## 甲方
公司名称：[甲方公司名称]
地址：[甲方地址]

## 乙方
公司名称：[乙方公司名称]
地址：[乙方地址]

## 保密信息定义
本协议所称保密信息包括但不限于：
1. 技术信息
2. 商业信息
3. 财务信息
4. 客户信息
5. 其他标记为保密的信息

## 保密义务
1. 严格保密
2. 限制使用
3. 妥善保管
4. 及时归还

## 保密期限
保密期限为[保密期限]年

## 违约责任
[违约责任条款]

## 其他条款
[其他相关条款]`
