package graph

import "github.com/graphql-go/graphql"

// NewSchema builds the executable schema around the resolver.
func NewSchema(r *Resolver) (graphql.Schema, error) {
	r.buildTypes()

	signUpInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "SignUpInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"fullName": {Type: graphql.NewNonNull(graphql.String)},
			"email":    {Type: graphql.NewNonNull(graphql.String)},
			"username": {Type: graphql.NewNonNull(graphql.String)},
			"password": {Type: graphql.NewNonNull(graphql.String)},
		},
	})
	signInInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "SignInInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"emailOrUsername": {Type: graphql.NewNonNull(graphql.String)},
			"password":        {Type: graphql.NewNonNull(graphql.String)},
		},
	})
	uploadUserPhotoInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UploadUserPhotoInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"id":      {Type: graphql.NewNonNull(graphql.ID)},
			"image":   {Type: graphql.NewNonNull(uploadScalar)},
			"isCover": {Type: graphql.Boolean},
		},
	})
	createPostInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "CreatePostInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"title": {Type: graphql.String},
			"image": {Type: uploadScalar},
		},
	})
	deletePostInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "DeletePostInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"id":            {Type: graphql.NewNonNull(graphql.ID)},
			"imagePublicId": {Type: graphql.String},
		},
	})
	createMessageInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "CreateMessageInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"sender":   {Type: graphql.NewNonNull(graphql.ID)},
			"receiver": {Type: graphql.NewNonNull(graphql.ID)},
			"message":  {Type: graphql.String},
			"image":    {Type: uploadScalar},
		},
	})
	updateMessageSeenInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UpdateMessageSeenInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"sender":   {Type: graphql.NewNonNull(graphql.ID)},
			"receiver": {Type: graphql.NewNonNull(graphql.ID)},
		},
	})
	createCommentInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "CreateCommentInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"comment": {Type: graphql.NewNonNull(graphql.String)},
			"postId":  {Type: graphql.NewNonNull(graphql.ID)},
		},
	})
	deleteCommentInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "DeleteCommentInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"id": {Type: graphql.NewNonNull(graphql.ID)},
		},
	})
	createLikeInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "CreateLikeInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"postId": {Type: graphql.NewNonNull(graphql.ID)},
		},
	})
	deleteLikeInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "DeleteLikeInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"postId": {Type: graphql.NewNonNull(graphql.ID)},
		},
	})
	createFollowInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "CreateFollowInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"userId": {Type: graphql.NewNonNull(graphql.ID)},
		},
	})
	deleteFollowInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "DeleteFollowInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"userId": {Type: graphql.NewNonNull(graphql.ID)},
		},
	})

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"getAuthUser": &graphql.Field{
				Type:    r.types.user,
				Resolve: r.getAuthUser,
			},
			"getUser": &graphql.Field{
				Type: r.types.user,
				Args: graphql.FieldConfigArgument{
					"username": &graphql.ArgumentConfig{Type: graphql.String},
					"id":       &graphql.ArgumentConfig{Type: graphql.ID},
				},
				Resolve: r.getUser,
			},
			"getUsers": &graphql.Field{
				Type: r.types.usersPayload,
				Args: graphql.FieldConfigArgument{
					"skip":  &graphql.ArgumentConfig{Type: graphql.Int},
					"limit": &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: r.getUsers,
			},
			"searchUsers": &graphql.Field{
				Type: graphql.NewList(r.types.user),
				Args: graphql.FieldConfigArgument{
					"searchQuery": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.searchUsers,
			},
			"suggestPeople": &graphql.Field{
				Type:    graphql.NewList(r.types.user),
				Resolve: r.suggestPeople,
			},
			"verifyResetPasswordToken": &graphql.Field{
				Type: r.types.successMessage,
				Args: graphql.FieldConfigArgument{
					"email": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"token": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.verifyResetPasswordToken,
			},
			"getUserPosts": &graphql.Field{
				Type: r.types.postsPayload,
				Args: graphql.FieldConfigArgument{
					"username": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"skip":     &graphql.ArgumentConfig{Type: graphql.Int},
					"limit":    &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: r.getUserPosts,
			},
			"getPosts": &graphql.Field{
				Type: r.types.postsPayload,
				Args: graphql.FieldConfigArgument{
					"skip":  &graphql.ArgumentConfig{Type: graphql.Int},
					"limit": &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: r.getPosts,
			},
			"getFollowedPosts": &graphql.Field{
				Type: r.types.postsPayload,
				Args: graphql.FieldConfigArgument{
					"skip":  &graphql.ArgumentConfig{Type: graphql.Int},
					"limit": &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: r.getFollowedPosts,
			},
			"getPost": &graphql.Field{
				Type: r.types.post,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: r.getPost,
			},
			"getMessages": &graphql.Field{
				Type: graphql.NewList(r.types.message),
				Args: graphql.FieldConfigArgument{
					"userId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: r.getMessages,
			},
			"getConversations": &graphql.Field{
				Type:    graphql.NewList(r.types.conversation),
				Resolve: r.getConversations,
			},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"signup": &graphql.Field{
				Type: r.types.token,
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(signUpInput)},
				},
				Resolve: r.signup,
			},
			"signin": &graphql.Field{
				Type: r.types.token,
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(signInInput)},
				},
				Resolve: r.signin,
			},
			"requestPasswordReset": &graphql.Field{
				Type: r.types.successMessage,
				Args: graphql.FieldConfigArgument{
					"email": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.requestPasswordReset,
			},
			"resetPassword": &graphql.Field{
				Type: r.types.token,
				Args: graphql.FieldConfigArgument{
					"email":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"token":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.resetPassword,
			},
			"uploadUserPhoto": &graphql.Field{
				Type: r.types.user,
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(uploadUserPhotoInput)},
				},
				Resolve: r.uploadUserPhoto,
			},
			"createPost": &graphql.Field{
				Type: r.types.post,
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(createPostInput)},
				},
				Resolve: r.createPost,
			},
			"deletePost": &graphql.Field{
				Type: r.types.post,
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(deletePostInput)},
				},
				Resolve: r.deletePost,
			},
			"createMessage": &graphql.Field{
				Type: r.types.message,
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(createMessageInput)},
				},
				Resolve: r.createMessage,
			},
			"updateMessageSeen": &graphql.Field{
				Type: graphql.Boolean,
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(updateMessageSeenInput)},
				},
				Resolve: r.updateMessageSeen,
			},
			"createComment": &graphql.Field{
				Type: r.types.comment,
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(createCommentInput)},
				},
				Resolve: r.createComment,
			},
			"deleteComment": &graphql.Field{
				Type: r.types.comment,
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(deleteCommentInput)},
				},
				Resolve: r.deleteComment,
			},
			"createLike": &graphql.Field{
				Type: r.types.like,
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(createLikeInput)},
				},
				Resolve: r.createLike,
			},
			"deleteLike": &graphql.Field{
				Type: r.types.like,
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(deleteLikeInput)},
				},
				Resolve: r.deleteLike,
			},
			"createFollow": &graphql.Field{
				Type: r.types.follow,
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(createFollowInput)},
				},
				Resolve: r.createFollow,
			},
			"deleteFollow": &graphql.Field{
				Type: r.types.follow,
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(deleteFollowInput)},
				},
				Resolve: r.deleteFollow,
			},
			"updateNotificationSeen": &graphql.Field{
				Type:    graphql.Boolean,
				Resolve: r.updateNotificationSeen,
			},
		},
	})

	subscription := graphql.NewObject(graphql.ObjectConfig{
		Name: "Subscription",
		Fields: graphql.Fields{
			"messageCreated": &graphql.Field{
				Type: r.types.message,
				Args: graphql.FieldConfigArgument{
					"authUserId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"userId":     &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Subscribe: r.subscribeMessageCreated,
				Resolve:   resolveEvent,
			},
			"newConversation": &graphql.Field{
				Type:      r.types.conversation,
				Subscribe: r.subscribeNewConversation,
				Resolve:   resolveEvent,
			},
			"notificationCreated": &graphql.Field{
				Type:      r.types.notification,
				Subscribe: r.subscribeNotificationCreated,
				Resolve:   resolveEvent,
			},
			"isUserOnline": &graphql.Field{
				Type: r.types.userOnline,
				Args: graphql.FieldConfigArgument{
					"userId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Subscribe: r.subscribeIsUserOnline,
				Resolve:   resolveEvent,
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:        query,
		Mutation:     mutation,
		Subscription: subscription,
	})
}

// resolveEvent passes the event emitted by the Subscribe channel through
// unchanged.
func resolveEvent(p graphql.ResolveParams) (interface{}, error) {
	return p.Source, nil
}
