// Package docs holds the OpenAPI description served under /swagger.
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
        "/admin/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Create an account",
                "parameters": [
                    {"description": "Account details", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/controllers.RegisterResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "409": {"description": "User already exists", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/admin/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Log in",
                "parameters": [
                    {"description": "Credentials", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.AuthResponse"}},
                    "401": {"description": "Invalid login name or password", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/admin/logout": {
            "post": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Log out",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.MessageResponse"}}
                }
            }
        },
        "/user/list": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["user"],
                "summary": "List my friends",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.UserSummary"}}}
                }
            }
        },
        "/user/available": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["user"],
                "summary": "List users I can send a friend request to",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.UserSummary"}}}
                }
            }
        },
        "/user/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["user"],
                "summary": "Get a user profile",
                "parameters": [
                    {"type": "string", "description": "User ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.UserSummary"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/user/update": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["user"],
                "summary": "Update my profile",
                "parameters": [
                    {"description": "Fields to change", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.UpdateProfileRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.UserResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/user/upload-avatar": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["user"],
                "summary": "Upload a new avatar",
                "parameters": [
                    {"type": "file", "description": "Image file", "name": "avatar", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.AvatarResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/friend/send-request": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["friend"],
                "summary": "Send a friend request",
                "parameters": [
                    {"description": "Recipient", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.SendFriendRequestInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/utils.MessageResponse"}},
                    "400": {"description": "Self request or missing recipient", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "404": {"description": "Recipient not found", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "409": {"description": "Request pending or already friends", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/friend/respond/{friendId}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["friend"],
                "summary": "Accept or decline a friend request",
                "parameters": [
                    {"type": "string", "description": "Friend request ID", "name": "friendId", "in": "path", "required": true},
                    {"description": "accepted or declined", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.RespondFriendRequestInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.MessageResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "404": {"description": "No pending request addressed to the caller", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/friend/list": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["friend"],
                "summary": "List my friends",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.PublicProfile"}}}
                }
            }
        },
        "/friend/requests": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["friend"],
                "summary": "List friend requests waiting on me",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.FriendRequestResponse"}}}
                }
            }
        },
        "/friend/sent": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["friend"],
                "summary": "List friend requests I sent that are still pending",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.FriendRequestResponse"}}}
                }
            }
        },
        "/friend/my-link": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["friend"],
                "summary": "Get my add-friend link",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.FriendLinkResponse"}}
                }
            }
        },
        "/friend/status/{userId}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["friend"],
                "summary": "Friendship status with another user",
                "parameters": [
                    {"type": "string", "description": "Other user ID", "name": "userId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.FriendshipStatusResponse"}}
                }
            }
        },
        "/photo": {
            "get": {
                "produces": ["application/json"],
                "tags": ["photo"],
                "summary": "List every photo",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Photo"}}}
                }
            }
        },
        "/photo/photosOfUser/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["photo"],
                "summary": "List a user's photos, newest first",
                "parameters": [
                    {"type": "string", "description": "User ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.PhotoResponse"}}},
                    "404": {"description": "User not found or no photos", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/photo/upload": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["photo"],
                "summary": "Upload a photo",
                "parameters": [
                    {"type": "file", "description": "Image file", "name": "file", "in": "formData", "required": true},
                    {"type": "string", "description": "Title", "name": "title", "in": "formData"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.PhotoResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/photo/delete/{id}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["photo"],
                "summary": "Delete one of my photos",
                "parameters": [
                    {"type": "string", "description": "Photo ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.MessageResponse"}},
                    "403": {"description": "Not the owner", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/photo/commentsOfPhoto/{photoId}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["photo"],
                "summary": "List comments on a photo",
                "parameters": [
                    {"type": "string", "description": "Photo ID", "name": "photoId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.CommentResponse"}}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["photo"],
                "summary": "Comment on a photo",
                "parameters": [
                    {"type": "string", "description": "Photo ID", "name": "photoId", "in": "path", "required": true},
                    {"description": "Comment", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.AddCommentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.CommentResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/reaction/{photoId}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["reaction"],
                "summary": "List reactions on a photo",
                "parameters": [
                    {"type": "string", "description": "Photo ID", "name": "photoId", "in": "path", "required": true},
                    {"type": "string", "description": "Only this reaction type", "name": "type", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.PhotoReactions"}},
                    "400": {"description": "Invalid reaction type", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "404": {"description": "Photo not found", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Adds a reaction, removes it when the same type is sent again, or switches it to the new type.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["reaction"],
                "summary": "React to a photo",
                "parameters": [
                    {"type": "string", "description": "Photo ID", "name": "photoId", "in": "path", "required": true},
                    {"description": "like, love, haha, wow, sad or angry", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.ReactInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.ReactResponse"}},
                    "400": {"description": "Invalid reaction type", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "404": {"description": "Photo not found", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["reaction"],
                "summary": "Remove my reaction from a photo",
                "parameters": [
                    {"type": "string", "description": "Photo ID", "name": "photoId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.UnreactResponse"}},
                    "404": {"description": "Photo not found or no reaction", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/reaction/{photoId}/user/{userId}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["reaction"],
                "summary": "Get one user's reaction on a photo",
                "parameters": [
                    {"type": "string", "description": "Photo ID", "name": "photoId", "in": "path", "required": true},
                    {"type": "string", "description": "User ID", "name": "userId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.UserReactionStatus"}},
                    "404": {"description": "Photo not found", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "controllers.RegisterRequest": {
            "type": "object",
            "required": ["first_name", "login_name", "password"],
            "properties": {
                "login_name": {"type": "string"},
                "password": {"type": "string", "minLength": 6},
                "first_name": {"type": "string"},
                "last_name": {"type": "string"},
                "location": {"type": "string"},
                "description": {"type": "string"},
                "occupation": {"type": "string"},
                "email": {"type": "string"}
            }
        },
        "controllers.RegisterResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "user": {"$ref": "#/definitions/models.User"}
            }
        },
        "controllers.LoginRequest": {
            "type": "object",
            "required": ["login_name", "password"],
            "properties": {
                "login_name": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "controllers.AuthResponse": {
            "type": "object",
            "properties": {
                "token": {"type": "string"},
                "user": {"$ref": "#/definitions/models.User"}
            }
        },
        "controllers.UpdateProfileRequest": {
            "type": "object",
            "properties": {
                "first_name": {"type": "string"},
                "last_name": {"type": "string"},
                "location": {"type": "string"},
                "description": {"type": "string"},
                "occupation": {"type": "string"},
                "email": {"type": "string"}
            }
        },
        "controllers.UserResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "user": {"$ref": "#/definitions/models.User"}
            }
        },
        "controllers.AvatarResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "avatar": {"type": "string"},
                "user": {"$ref": "#/definitions/models.User"}
            }
        },
        "controllers.SendFriendRequestInput": {
            "type": "object",
            "required": ["recipientId"],
            "properties": {
                "recipientId": {"type": "string"}
            }
        },
        "controllers.RespondFriendRequestInput": {
            "type": "object",
            "required": ["action"],
            "properties": {
                "action": {"type": "string", "enum": ["accepted", "declined"]}
            }
        },
        "controllers.FriendLinkResponse": {
            "type": "object",
            "properties": {
                "friendLink": {"type": "string"},
                "userId": {"type": "string"}
            }
        },
        "controllers.AddCommentRequest": {
            "type": "object",
            "required": ["comment"],
            "properties": {
                "comment": {"type": "string"}
            }
        },
        "controllers.ReactInput": {
            "type": "object",
            "required": ["type"],
            "properties": {
                "type": {"type": "string", "enum": ["like", "love", "haha", "wow", "sad", "angry"]}
            }
        },
        "controllers.ReactResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "action": {"type": "string", "enum": ["added", "removed", "updated"]},
                "reactionType": {"type": "string"},
                "stats": {"$ref": "#/definitions/models.ReactionStats"}
            }
        },
        "controllers.UnreactResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "removedType": {"type": "string"},
                "stats": {"$ref": "#/definitions/models.ReactionStats"}
            }
        },
        "models.User": {
            "type": "object",
            "properties": {
                "_id": {"type": "string"},
                "login_name": {"type": "string"},
                "first_name": {"type": "string"},
                "last_name": {"type": "string"},
                "email": {"type": "string"},
                "location": {"type": "string"},
                "description": {"type": "string"},
                "occupation": {"type": "string"},
                "avatar": {"type": "string"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "models.UserSummary": {
            "type": "object",
            "properties": {
                "_id": {"type": "string"},
                "first_name": {"type": "string"},
                "last_name": {"type": "string"},
                "location": {"type": "string"},
                "description": {"type": "string"},
                "occupation": {"type": "string"},
                "login_name": {"type": "string"},
                "avatar": {"type": "string"}
            }
        },
        "models.PublicProfile": {
            "type": "object",
            "properties": {
                "_id": {"type": "string"},
                "first_name": {"type": "string"},
                "last_name": {"type": "string"},
                "avatar": {"type": "string"},
                "occupation": {"type": "string"},
                "location": {"type": "string"}
            }
        },
        "models.FriendRequestResponse": {
            "type": "object",
            "properties": {
                "_id": {"type": "string"},
                "requester_id": {"type": "string"},
                "recipient_id": {"type": "string"},
                "requester": {"$ref": "#/definitions/models.PublicProfile"},
                "recipient": {"$ref": "#/definitions/models.PublicProfile"},
                "status": {"type": "string"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "models.FriendshipStatusResponse": {
            "type": "object",
            "properties": {
                "is_friend": {"type": "boolean"},
                "has_pending_sent": {"type": "boolean"},
                "has_pending_received": {"type": "boolean"},
                "friendship_id": {"type": "string"}
            }
        },
        "models.ReactionStats": {
            "type": "object",
            "properties": {
                "like": {"type": "integer"},
                "love": {"type": "integer"},
                "haha": {"type": "integer"},
                "wow": {"type": "integer"},
                "sad": {"type": "integer"},
                "angry": {"type": "integer"},
                "total": {"type": "integer"}
            }
        },
        "models.CommentResponse": {
            "type": "object",
            "properties": {
                "_id": {"type": "string"},
                "comment": {"type": "string"},
                "date_time": {"type": "string"},
                "user_id": {"type": "string"},
                "user": {
                    "type": "object",
                    "properties": {
                        "_id": {"type": "string"},
                        "first_name": {"type": "string"},
                        "last_name": {"type": "string"}
                    }
                }
            }
        },
        "models.Photo": {
            "type": "object",
            "properties": {
                "_id": {"type": "string"},
                "title": {"type": "string"},
                "file_name": {"type": "string"},
                "user_id": {"type": "string"},
                "date_time": {"type": "string"},
                "reaction_stats": {"$ref": "#/definitions/models.ReactionStats"}
            }
        },
        "models.PhotoResponse": {
            "type": "object",
            "properties": {
                "_id": {"type": "string"},
                "user_id": {"type": "string"},
                "title": {"type": "string"},
                "file_name": {"type": "string"},
                "date_time": {"type": "string"},
                "comments": {"type": "array", "items": {"$ref": "#/definitions/models.CommentResponse"}},
                "reaction_stats": {"$ref": "#/definitions/models.ReactionStats"}
            }
        },
        "models.ReactionWithUser": {
            "type": "object",
            "properties": {
                "_id": {"type": "string"},
                "type": {"type": "string"},
                "date_time": {"type": "string"},
                "user_id": {"type": "string"},
                "user": {
                    "type": "object",
                    "properties": {
                        "_id": {"type": "string"},
                        "first_name": {"type": "string"},
                        "last_name": {"type": "string"},
                        "avatar": {"type": "string"}
                    }
                }
            }
        },
        "models.PhotoReactions": {
            "type": "object",
            "properties": {
                "reactions": {"type": "array", "items": {"$ref": "#/definitions/models.ReactionWithUser"}},
                "stats": {"$ref": "#/definitions/models.ReactionStats"}
            }
        },
        "models.UserReactionStatus": {
            "type": "object",
            "properties": {
                "hasReaction": {"type": "boolean"},
                "reaction": {
                    "type": "object",
                    "properties": {
                        "type": {"type": "string"},
                        "date_time": {"type": "string"}
                    }
                }
            }
        },
        "utils.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "message": {"type": "string"},
                "code": {"type": "integer"}
            }
        },
        "utils.MessageResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8000",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "PhotoShare API",
	Description:      "Photo sharing with friendships, comments and reactions.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
