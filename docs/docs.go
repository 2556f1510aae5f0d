// Package docs 注册 swagger 文档，供 gin-swagger 在 /swagger/index.html 展示
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/auth/register": {"post": {"tags": ["auth"], "summary": "注册新用户", "parameters": [{"in": "body", "name": "user", "required": true, "schema": {"$ref": "#/definitions/models.UserForm"}}], "responses": {"201": {"description": "注册成功"}, "409": {"description": "账号已存在"}}}},
        "/auth/login": {"post": {"tags": ["auth"], "summary": "用户登录", "parameters": [{"in": "body", "name": "credentials", "required": true, "schema": {"$ref": "#/definitions/models.UserForm"}}], "responses": {"200": {"description": "登录成功，返回 Token 和用户信息"}, "401": {"description": "账号或密码错误"}, "429": {"description": "请求过于频繁"}}}},
        "/auth/logout": {"post": {"security": [{"BearerAuth": []}], "tags": ["auth"], "summary": "用户登出", "responses": {"200": {"description": "成功登出"}}}},
        "/auth/me": {"get": {"security": [{"BearerAuth": []}], "tags": ["auth"], "summary": "当前登录用户", "responses": {"200": {"description": "当前用户"}, "401": {"description": "未认证或 Token 无效/过期"}}}},
        "/boards": {
            "get": {"tags": ["Boards"], "summary": "获取帖子列表", "parameters": [{"in": "query", "name": "page", "type": "integer", "default": 1}, {"in": "query", "name": "limit", "type": "integer", "default": 10}, {"in": "query", "name": "sortBy", "type": "string"}, {"in": "query", "name": "sortOrder", "type": "string", "default": "desc"}], "responses": {"200": {"description": "成功响应，包含帖子列表和分页信息"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["Boards"], "summary": "发布帖子", "parameters": [{"in": "body", "name": "board", "required": true, "schema": {"$ref": "#/definitions/models.BoardForm"}}], "responses": {"201": {"description": "创建成功的帖子对象"}, "401": {"description": "未认证或 Token 无效/过期"}, "404": {"description": "用户未找到"}}}
        },
        "/boards/search": {"get": {"tags": ["Boards"], "summary": "搜索帖子", "parameters": [{"in": "query", "name": "keyword", "type": "string", "required": true}, {"in": "query", "name": "searchType", "type": "string", "enum": ["WRITER", "TITLE", "CONTENTS", "ALL"], "default": "ALL"}, {"in": "query", "name": "page", "type": "integer", "default": 1}, {"in": "query", "name": "limit", "type": "integer", "default": 10}], "responses": {"200": {"description": "成功响应，包含帖子列表和分页信息"}, "400": {"description": "请求参数错误"}}}},
        "/boards/feed": {"get": {"tags": ["Boards"], "summary": "最新帖子订阅", "produces": ["application/atom+xml"], "responses": {"200": {"description": "Atom 订阅内容"}}}},
        "/boards/{id}": {
            "put": {"security": [{"BearerAuth": []}], "tags": ["Boards"], "summary": "修改帖子", "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}, {"in": "body", "name": "board", "required": true, "schema": {"$ref": "#/definitions/models.BoardForm"}}], "responses": {"200": {"description": "修改成功"}, "403": {"description": "无权修改"}, "404": {"description": "用户或帖子未找到"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["Boards"], "summary": "删除帖子", "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}], "responses": {"200": {"description": "删除成功"}, "403": {"description": "无权删除"}, "404": {"description": "用户或帖子未找到"}}}
        },
        "/boards/{id}/like": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["Likes"], "summary": "点赞帖子", "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}], "responses": {"201": {"description": "点赞记录"}, "404": {"description": "用户或帖子未找到"}, "409": {"description": "已经点赞过"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["Likes"], "summary": "取消点赞", "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}, {"in": "query", "name": "likeHistoryId", "type": "integer"}], "responses": {"200": {"description": "取消成功"}, "404": {"description": "用户、帖子或点赞记录未找到"}}}
        }
    },
    "definitions": {
        "models.UserForm": {"type": "object", "required": ["accountId", "password"], "properties": {"accountId": {"type": "string", "maxLength": 100}, "password": {"type": "string", "maxLength": 72}}},
        "models.BoardForm": {"type": "object", "required": ["title", "contents"], "properties": {"title": {"type": "string", "maxLength": 255}, "contents": {"type": "string"}}}
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "freeboard API",
	Description:      "社区留言板后端：注册登录、帖子、搜索与点赞",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
